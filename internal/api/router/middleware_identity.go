package router

import (
	"net/http"
	"strings"

	"github.com/propline/propline/internal/identity"
)

const identityHeader = "X-Identity-Id"

// requireIdentity enforces the identity header on the contact endpoints. The
// identity is an opaque caller-supplied ID: a user ID for signed-in traffic,
// a device ID otherwise.
func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityID := strings.TrimSpace(r.Header.Get(identityHeader))
		if identityID == "" {
			http.Error(w, "missing X-Identity-Id", http.StatusBadRequest)
			return
		}
		ctx := identity.WithID(r.Context(), identityID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
