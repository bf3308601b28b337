package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"

	"bizdir/internal/ratelimiter"
	"bizdir/internal/store"

	"go.uber.org/zap"
)

func newTestApplication() *application {
	return &application{
		config: config{
			env: "test",
			rateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 1000,
				Enabled:              false,
			},
		},
		logger: zap.NewNop().Sugar(),
		store: store.Storage{
			Businesses: &businessStoreStub{rows: map[int64]*store.Business{}},
			Reviews:    &reviewStoreStub{rows: map[int64]*store.Review{}},
			Photos:     &photoStoreStub{rows: map[int64]*store.Photo{}},
		},
	}
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

func readBody(rr *httptest.ResponseRecorder) []byte {
	body, _ := io.ReadAll(rr.Body)
	return body
}

// businessStoreStub is an in-memory stand-in for the business store.
type businessStoreStub struct {
	rows   map[int64]*store.Business
	nextID int64
}

func (s *businessStoreStub) seed(b store.Business) *store.Business {
	s.nextID++
	b.ID = s.nextID
	s.rows[b.ID] = &b
	return &b
}

func (s *businessStoreStub) sorted() []store.Business {
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]store.Business, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.rows[id])
	}
	return out
}

func (s *businessStoreStub) Create(_ context.Context, b *store.Business) error {
	s.nextID++
	b.ID = s.nextID
	clone := *b
	s.rows[b.ID] = &clone
	return nil
}

func (s *businessStoreStub) GetByID(_ context.Context, id int64) (*store.Business, error) {
	b, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (s *businessStoreStub) List(_ context.Context, limit, offset int) ([]store.Business, int, error) {
	all := s.sorted()
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *businessStoreStub) Update(_ context.Context, b *store.Business) error {
	if _, ok := s.rows[b.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *b
	s.rows[b.ID] = &clone
	return nil
}

func (s *businessStoreStub) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *businessStoreStub) GetByOwner(_ context.Context, ownerID int64) ([]store.Business, error) {
	var out []store.Business
	for _, b := range s.sorted() {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

// reviewStoreStub is an in-memory stand-in for the review store.
type reviewStoreStub struct {
	rows   map[int64]*store.Review
	nextID int64
}

func (s *reviewStoreStub) seed(rv store.Review) *store.Review {
	s.nextID++
	rv.ID = s.nextID
	s.rows[rv.ID] = &rv
	return &rv
}

func (s *reviewStoreStub) Create(_ context.Context, rv *store.Review) error {
	for _, existing := range s.rows {
		if existing.UserID == rv.UserID && existing.BusinessID == rv.BusinessID {
			return store.ErrConflict
		}
	}
	s.nextID++
	rv.ID = s.nextID
	clone := *rv
	s.rows[rv.ID] = &clone
	return nil
}

func (s *reviewStoreStub) GetByID(_ context.Context, id int64) (*store.Review, error) {
	rv, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *rv
	return &clone, nil
}

func (s *reviewStoreStub) GetByBusiness(_ context.Context, businessID int64) ([]store.Review, error) {
	var out []store.Review
	for _, rv := range s.rows {
		if rv.BusinessID == businessID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (s *reviewStoreStub) GetByUser(_ context.Context, userID int64) ([]store.Review, error) {
	var out []store.Review
	for _, rv := range s.rows {
		if rv.UserID == userID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (s *reviewStoreStub) Exists(_ context.Context, userID, businessID int64) (bool, error) {
	for _, rv := range s.rows {
		if rv.UserID == userID && rv.BusinessID == businessID {
			return true, nil
		}
	}
	return false, nil
}

func (s *reviewStoreStub) Update(_ context.Context, rv *store.Review) error {
	if _, ok := s.rows[rv.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *rv
	s.rows[rv.ID] = &clone
	return nil
}

func (s *reviewStoreStub) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// photoStoreStub is an in-memory stand-in for the photo store.
type photoStoreStub struct {
	rows   map[int64]*store.Photo
	nextID int64
}

func (s *photoStoreStub) seed(p store.Photo) *store.Photo {
	s.nextID++
	p.ID = s.nextID
	s.rows[p.ID] = &p
	return &p
}

func (s *photoStoreStub) Create(_ context.Context, p *store.Photo) error {
	s.nextID++
	p.ID = s.nextID
	clone := *p
	s.rows[p.ID] = &clone
	return nil
}

func (s *photoStoreStub) GetByID(_ context.Context, id int64) (*store.Photo, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *photoStoreStub) GetByBusiness(_ context.Context, businessID int64) ([]store.Photo, error) {
	var out []store.Photo
	for _, p := range s.rows {
		if p.BusinessID == businessID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *photoStoreStub) GetByUser(_ context.Context, userID int64) ([]store.Photo, error) {
	var out []store.Photo
	for _, p := range s.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *photoStoreStub) Update(_ context.Context, p *store.Photo) error {
	if _, ok := s.rows[p.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *p
	s.rows[p.ID] = &clone
	return nil
}

func (s *photoStoreStub) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
