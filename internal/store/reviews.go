package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Review is a user's rating of a business. A user may hold at most one
// review per business; the (user_id, business_id) pair is immutable once
// the review exists.
type Review struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	BusinessID int64     `json:"business_id"`
	Dollars    int       `json:"dollars"` // 1-4 price level
	Stars      float64   `json:"stars"`
	Review     *string   `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewStore struct {
	db *pgxpool.Pool
}

// Create inserts a review. The unique index on (user_id, business_id)
// backstops the handler's existence pre-check, so two concurrent creates
// for the same pair cannot both land; the loser surfaces as ErrConflict.
func (s *ReviewStore) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (user_id, business_id, dollars, stars, review)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query,
		review.UserID,
		review.BusinessID,
		review.Dollars,
		review.Stars,
		review.Review,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (s *ReviewStore) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	query := `
		SELECT id, user_id, business_id, dollars, stars, review, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var review Review
	err := s.db.QueryRow(ctx, query, reviewID).Scan(
		&review.ID,
		&review.UserID,
		&review.BusinessID,
		&review.Dollars,
		&review.Stars,
		&review.Review,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (s *ReviewStore) GetByBusiness(ctx context.Context, businessID int64) ([]Review, error) {
	return s.getFiltered(ctx, `business_id`, businessID)
}

func (s *ReviewStore) GetByUser(ctx context.Context, userID int64) ([]Review, error) {
	return s.getFiltered(ctx, `user_id`, userID)
}

func (s *ReviewStore) getFiltered(ctx context.Context, column string, id int64) ([]Review, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, business_id, dollars, stars, review, created_at, updated_at
		FROM reviews
		WHERE %s = $1
		ORDER BY id ASC
	`, column)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.BusinessID,
			&review.Dollars,
			&review.Stars,
			&review.Review,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return reviews, nil
}

// Exists returns true if a review by this user on this business already exists.
func (s *ReviewStore) Exists(ctx context.Context, userID, businessID int64) (bool, error) {
	query := `
		SELECT EXISTS (
		  SELECT 1 FROM reviews
		  WHERE user_id = $1 AND business_id = $2
		)
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := s.db.QueryRow(ctx, query, userID, businessID).Scan(&exists)
	return exists, err
}

func (s *ReviewStore) Update(ctx context.Context, review *Review) error {
	query := `
		UPDATE reviews
		SET dollars = $1, stars = $2, review = $3, updated_at = NOW()
		WHERE id = $4
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query,
		review.Dollars,
		review.Stars,
		review.Review,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
