package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Business represents a business listing in the directory.
type Business struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Website     *string   `json:"website,omitempty"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BusinessStore struct {
	db *pgxpool.Pool
}

func (s *BusinessStore) Create(ctx context.Context, business *Business) error {
	query := `
		INSERT INTO businesses (owner_id, name, address, city, state, zip, phone, category, subcategory, website, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query,
		business.OwnerID,
		business.Name,
		business.Address,
		business.City,
		business.State,
		business.Zip,
		business.Phone,
		business.Category,
		business.Subcategory,
		business.Website,
		business.Email,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

func (s *BusinessStore) GetByID(ctx context.Context, businessID int64) (*Business, error) {
	query := `
		SELECT id, owner_id, name, address, city, state, zip, phone, category, subcategory, website, email, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var business Business
	err := s.db.QueryRow(ctx, query, businessID).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Address,
		&business.City,
		&business.State,
		&business.Zip,
		&business.Phone,
		&business.Category,
		&business.Subcategory,
		&business.Website,
		&business.Email,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// List returns one page of businesses ordered by id together with the total
// row count for the collection.
func (s *BusinessStore) List(ctx context.Context, limit, offset int) ([]Business, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var totalCount int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	query := `
		SELECT id, owner_id, name, address, city, state, zip, phone, category, subcategory, website, email, created_at, updated_at
		FROM businesses
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	businesses, err := scanBusinesses(rows)
	if err != nil {
		return nil, 0, err
	}
	return businesses, totalCount, nil
}

func (s *BusinessStore) Update(ctx context.Context, business *Business) error {
	query := `
		UPDATE businesses
		SET owner_id = $1, name = $2, address = $3, city = $4, state = $5, zip = $6,
		    phone = $7, category = $8, subcategory = $9, website = $10, email = $11,
		    updated_at = NOW()
		WHERE id = $12
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query,
		business.OwnerID,
		business.Name,
		business.Address,
		business.City,
		business.State,
		business.Zip,
		business.Phone,
		business.Category,
		business.Subcategory,
		business.Website,
		business.Email,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a business row. Dependent reviews and photos are left in
// place, matching the directory's no-cascade rule.
func (s *BusinessStore) Delete(ctx context.Context, businessID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BusinessStore) GetByOwner(ctx context.Context, ownerID int64) ([]Business, error) {
	query := `
		SELECT id, owner_id, name, address, city, state, zip, phone, category, subcategory, website, email, created_at, updated_at
		FROM businesses
		WHERE owner_id = $1
		ORDER BY id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses by owner: %w", err)
	}
	defer rows.Close()

	return scanBusinesses(rows)
}

func scanBusinesses(rows pgx.Rows) ([]Business, error) {
	var businesses []Business
	for rows.Next() {
		var business Business
		err := rows.Scan(
			&business.ID,
			&business.OwnerID,
			&business.Name,
			&business.Address,
			&business.City,
			&business.State,
			&business.Zip,
			&business.Phone,
			&business.Category,
			&business.Subcategory,
			&business.Website,
			&business.Email,
			&business.CreatedAt,
			&business.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return businesses, nil
}
