package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bizdir/internal/params"
	"bizdir/internal/store"

	"github.com/go-chi/chi/v5"
)

type businessPayload struct {
	OwnerID     int64   `json:"owner_id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=255"`
	Address     string  `json:"address" validate:"required,max=255"`
	City        string  `json:"city" validate:"required,max=100"`
	State       string  `json:"state" validate:"required,max=100"`
	Zip         string  `json:"zip" validate:"required,zipcode"`
	Phone       string  `json:"phone" validate:"required,max=30"`
	Category    string  `json:"category" validate:"required,max=100"`
	Subcategory string  `json:"subcategory" validate:"required,max=100"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

type businessListResponse struct {
	Businesses []store.Business `json:"businesses"`
	PageNumber int              `json:"pageNumber"`
	TotalPages int              `json:"totalPages"`
	NumPerPage int              `json:"numPerPage"`
	TotalCount int              `json:"totalCount"`
	Links      params.Links     `json:"links"`
}

// listBusinessesHandler returns one page of the business collection along
// with navigation links. An out-of-range page is clamped rather than
// rejected, so this endpoint has no client error case.
func (app *application) listBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	pg := params.ParsePagination(r.URL.Query())

	businesses, total, err := app.store.Businesses.List(r.Context(), pg.Limit, pg.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// The requested page can point past the end of the collection; the rows
	// fetched above are stale then and the clamped page must be re-fetched.
	if pg.ComputeMeta(total) {
		businesses, _, err = app.store.Businesses.List(r.Context(), pg.Limit, pg.Offset)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	if businesses == nil {
		businesses = []store.Business{}
	}

	response := businessListResponse{
		Businesses: businesses,
		PageNumber: pg.Page,
		TotalPages: pg.TotalPages,
		NumPerPage: pg.Limit,
		TotalCount: pg.Total,
		Links:      pg.Links(r.URL.Path),
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createBusinessHandler(w http.ResponseWriter, r *http.Request) {
	var payload businessPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	business := &store.Business{
		OwnerID:     payload.OwnerID,
		Name:        payload.Name,
		Address:     payload.Address,
		City:        payload.City,
		State:       payload.State,
		Zip:         payload.Zip,
		Phone:       payload.Phone,
		Category:    payload.Category,
		Subcategory: payload.Subcategory,
		Website:     payload.Website,
		Email:       payload.Email,
	}

	if err := app.store.Businesses.Create(r.Context(), business); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": business.ID})
}

// getBusinessHandler returns a business together with every review and photo
// attached to it.
func (app *application) getBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	business, err := app.store.Businesses.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("business with id %d doesn't exist", businessID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	reviews, err := app.store.Reviews.GetByBusiness(r.Context(), businessID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	photos, err := app.store.Photos.GetByBusiness(r.Context(), businessID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if reviews == nil {
		reviews = []store.Review{}
	}
	if photos == nil {
		photos = []store.Photo{}
	}

	response := map[string]any{
		"business": business,
		"reviews":  reviews,
		"photos":   photos,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateBusinessHandler replaces every field of an existing business.
func (app *application) updateBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	var payload businessPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	business := &store.Business{
		ID:          businessID,
		OwnerID:     payload.OwnerID,
		Name:        payload.Name,
		Address:     payload.Address,
		City:        payload.City,
		State:       payload.State,
		Zip:         payload.Zip,
		Phone:       payload.Phone,
		Category:    payload.Category,
		Subcategory: payload.Subcategory,
		Website:     payload.Website,
		Email:       payload.Email,
	}

	if err := app.store.Businesses.Update(r.Context(), business); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("business with id %d doesn't exist", businessID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "business updated"})
}

func (app *application) deleteBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	if err := app.store.Businesses.Delete(r.Context(), businessID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("business with id %d doesn't exist", businessID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	message := fmt.Sprintf("business with id %d has been deleted", businessID)
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
