package properties

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores properties in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("properties: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreatePropertyRequest) (*Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO properties (id, title, description, listing_type, price_cents, city, bedrooms, owner_name, owner_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Title,
		req.Description,
		string(req.ListingType),
		req.PriceCents,
		req.City,
		req.Bedrooms,
		req.OwnerName,
		req.OwnerEmail,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("properties: insert failed: %w", err)
	}

	return &Property{
		ID:          id.String(),
		Title:       req.Title,
		Description: req.Description,
		ListingType: req.ListingType,
		PriceCents:  req.PriceCents,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
		CreatedAt:   createdAt,
	}, nil
}

// GetByID fetches a property by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	query := `
		SELECT id, title, description, listing_type, price_cents, city, bedrooms, owner_name, owner_email, created_at
		FROM properties
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	prop, err := scanProperty(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("properties: select failed: %w", err)
	}
	return prop, nil
}

// List returns properties matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Property, error) {
	var (
		conditions []string
		args       []any
	)
	addArg := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.City != "" {
		addArg("city = ", filter.City)
	}
	if filter.ListingType != "" {
		addArg("listing_type = ", string(filter.ListingType))
	}
	if filter.MinPriceCents > 0 {
		addArg("price_cents >= ", filter.MinPriceCents)
	}
	if filter.MaxPriceCents > 0 {
		addArg("price_cents <= ", filter.MaxPriceCents)
	}

	query := `
		SELECT id, title, description, listing_type, price_cents, city, bedrooms, owner_name, owner_email, created_at
		FROM properties
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("properties: list failed: %w", err)
	}
	defer rows.Close()

	var result []*Property
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("properties: scan failed: %w", err)
		}
		result = append(result, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("properties: list rows: %w", err)
	}
	return result, nil
}

func scanProperty(row pgx.Row) (*Property, error) {
	var (
		prop        Property
		listingType string
	)
	if err := row.Scan(
		&prop.ID,
		&prop.Title,
		&prop.Description,
		&listingType,
		&prop.PriceCents,
		&prop.City,
		&prop.Bedrooms,
		&prop.OwnerName,
		&prop.OwnerEmail,
		&prop.CreatedAt,
	); err != nil {
		return nil, err
	}
	prop.ListingType = ListingType(listingType)
	return &prop, nil
}
