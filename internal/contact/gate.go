// Package contact implements the quota-gated owner-contact workflow: an
// identity gets a fixed number of free contact actions; each successful lead
// consumes one; exhausted identities are routed to an upsell destination
// instead of the lead store.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/observability/metrics"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/internal/quota"
	"github.com/propline/propline/pkg/logging"
)

// Notifier delivers a new lead to the property owner. Failures are best
// effort: they never affect the attempt outcome.
type Notifier interface {
	LeadCreated(ctx context.Context, lead *leads.Lead, prop *properties.Property) error
}

// Gate decides whether an identity may contact a property owner and routes
// the caller after each outcome.
type Gate struct {
	leads      leads.Repository
	properties properties.Repository
	quota      quota.Store
	notifier   Notifier
	metrics    *metrics.ContactMetrics
	logger     *logging.Logger
}

// NewGate creates a contact gate. Notifier and metrics may be nil.
func NewGate(leadsRepo leads.Repository, propsRepo properties.Repository, quotaStore quota.Store, notifier Notifier, m *metrics.ContactMetrics, logger *logging.Logger) *Gate {
	if leadsRepo == nil || propsRepo == nil || quotaStore == nil {
		panic("contact: leads repo, properties repo and quota store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{
		leads:      leadsRepo,
		properties: propsRepo,
		quota:      quotaStore,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// AttemptRequest carries the candidate lead fields for one contact attempt.
type AttemptRequest struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// AttemptResult reports a successful attempt. RemainingKnown is false when
// the post-success decrement failed and RemainingUses is the best available
// estimate rather than the authoritative counter value.
type AttemptResult struct {
	Lead           *leads.Lead
	RemainingUses  int
	RemainingKnown bool
	Redirect       Destination
}

// CheckUsage returns the quota state for the identity without side effects.
// Safe to call on every form mount.
func (g *Gate) CheckUsage(ctx context.Context, identity string) (quota.Status, error) {
	return g.quota.Check(ctx, identity)
}

// AttemptContact runs one gated contact attempt:
//
//  1. Quota precondition: an exhausted identity is rejected before any lead
//     store call.
//  2. Validation: all violated lead invariants are reported together.
//  3. Lead creation: a single attempt, no retry; failure consumes no quota.
//  4. Consume: exactly one decrement per successful creation. A failed
//     decrement is logged and the result still reports success.
//  5. Redirect selection from the (remaining, listing type) table.
//
// Lead creation always completes before the consume step; the two never run
// concurrently.
func (g *Gate) AttemptContact(ctx context.Context, identityID string, req AttemptRequest) (*AttemptResult, error) {
	status, checkErr := g.quota.Check(ctx, identityID)
	if checkErr != nil {
		// Permissive on a failed read: the consume step after lead creation
		// remains the authoritative decision.
		g.logger.Warn("quota check failed, proceeding", "error", checkErr, "identity", identityID)
	} else if !status.CanContact {
		g.metrics.ObserveQuotaExhausted()
		g.metrics.ObserveAttempt(metrics.OutcomeQuotaExhausted)
		return nil, ErrQuotaExhausted
	}

	leadReq := &leads.CreateLeadRequest{
		PropertyID: req.PropertyID,
		Identity:   identityID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	}
	if err := leadReq.Validate(); err != nil {
		g.metrics.ObserveAttempt(metrics.OutcomeValidationFailed)
		return nil, err
	}

	prop, err := g.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			g.metrics.ObserveAttempt(metrics.OutcomeValidationFailed)
			return nil, err
		}
		g.metrics.ObserveAttempt(metrics.OutcomeStoreError)
		return nil, fmt.Errorf("contact: property lookup: %w", err)
	}

	start := time.Now()
	lead, err := g.leads.Create(ctx, leadReq)
	g.metrics.ObserveLeadLatency(time.Since(start).Seconds())
	if err != nil {
		g.metrics.ObserveAttempt(metrics.OutcomeStoreError)
		return nil, fmt.Errorf("%w: %v", ErrLeadCreationFailed, err)
	}

	// Exactly one consume per successful creation, never speculative.
	remaining := -1
	consumed, consumeErr := g.quota.Consume(ctx, identityID)
	if consumeErr != nil {
		g.logger.Error("usage consumption failed after lead creation",
			"error", consumeErr,
			"identity", identityID,
			"lead_id", lead.ID,
		)
		if checkErr == nil {
			// Best-known estimate: one use spent from the pre-attempt read.
			remaining = status.RemainingUses - 1
			if remaining < 0 {
				remaining = 0
			}
		}
	} else {
		remaining = consumed.RemainingUses
		if !consumed.Success {
			// A concurrent attempt for the same identity took the last use
			// between check and consume. The lead stands; the counter holds
			// at zero.
			g.logger.Warn("quota already exhausted at consume time",
				"identity", identityID,
				"lead_id", lead.ID,
			)
		}
	}

	if g.notifier != nil {
		if err := g.notifier.LeadCreated(ctx, lead, prop); err != nil {
			g.logger.Error("owner notification failed", "error", err, "lead_id", lead.ID)
		}
	}

	g.metrics.ObserveAttempt(metrics.OutcomeCreated)
	g.logger.Info("lead created",
		"lead_id", lead.ID,
		"property_id", prop.ID,
		"identity", identityID,
		"remaining_uses", remaining,
	)

	// remaining == -1 means both the check and the consume failed; treat the
	// identity as still having uses rather than blocking it incorrectly.
	hasRemaining := remaining != 0
	result := &AttemptResult{
		Lead:           lead,
		RemainingUses:  remaining,
		RemainingKnown: consumeErr == nil,
		Redirect:       redirectFor(hasRemaining, prop.ListingType),
	}
	if result.RemainingUses < 0 {
		result.RemainingUses = 0
	}
	return result, nil
}
