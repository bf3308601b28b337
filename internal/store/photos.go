package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Photo is a user-submitted photo record for a business. Like reviews, the
// (user_id, business_id) pair is fixed at creation.
type Photo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	BusinessID int64     `json:"business_id"`
	Caption    *string   `json:"caption,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PhotoStore struct {
	db *pgxpool.Pool
}

func (s *PhotoStore) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO photos (user_id, business_id, caption)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query,
		photo.UserID,
		photo.BusinessID,
		photo.Caption,
	).Scan(&photo.ID, &photo.CreatedAt, &photo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (s *PhotoStore) GetByID(ctx context.Context, photoID int64) (*Photo, error) {
	query := `
		SELECT id, user_id, business_id, caption, created_at, updated_at
		FROM photos
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var photo Photo
	err := s.db.QueryRow(ctx, query, photoID).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.BusinessID,
		&photo.Caption,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (s *PhotoStore) GetByBusiness(ctx context.Context, businessID int64) ([]Photo, error) {
	return s.getFiltered(ctx, `business_id`, businessID)
}

func (s *PhotoStore) GetByUser(ctx context.Context, userID int64) ([]Photo, error) {
	return s.getFiltered(ctx, `user_id`, userID)
}

func (s *PhotoStore) getFiltered(ctx context.Context, column string, id int64) ([]Photo, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, business_id, caption, created_at, updated_at
		FROM photos
		WHERE %s = $1
		ORDER BY id ASC
	`, column)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var photo Photo
		err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.BusinessID,
			&photo.Caption,
			&photo.CreatedAt,
			&photo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return photos, nil
}

func (s *PhotoStore) Update(ctx context.Context, photo *Photo) error {
	query := `
		UPDATE photos
		SET caption = $1, updated_at = NOW()
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, query, photo.Caption, photo.ID)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PhotoStore) Delete(ctx context.Context, photoID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
