package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Businesses interface {
		Create(context.Context, *Business) error
		GetByID(context.Context, int64) (*Business, error)
		List(ctx context.Context, limit, offset int) ([]Business, int, error)
		Update(context.Context, *Business) error
		Delete(context.Context, int64) error
		GetByOwner(context.Context, int64) ([]Business, error)
	}
	Reviews interface {
		Create(context.Context, *Review) error
		GetByID(context.Context, int64) (*Review, error)
		GetByBusiness(context.Context, int64) ([]Review, error)
		GetByUser(context.Context, int64) ([]Review, error)
		Exists(ctx context.Context, userID, businessID int64) (bool, error)
		Update(context.Context, *Review) error
		Delete(context.Context, int64) error
	}
	Photos interface {
		Create(context.Context, *Photo) error
		GetByID(context.Context, int64) (*Photo, error)
		GetByBusiness(context.Context, int64) ([]Photo, error)
		GetByUser(context.Context, int64) ([]Photo, error)
		Update(context.Context, *Photo) error
		Delete(context.Context, int64) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Businesses: &BusinessStore{db},
		Reviews:    &ReviewStore{db},
		Photos:     &PhotoStore{db},
	}
}
