package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bizdir/internal/store"

	"github.com/go-chi/chi/v5"
)

type reviewPayload struct {
	UserID     int64   `json:"user_id" validate:"required"`
	BusinessID int64   `json:"business_id" validate:"required"`
	Dollars    int     `json:"dollars" validate:"required,min=1,max=4"`
	Stars      float64 `json:"stars" validate:"required,min=1,max=5"`
	Review     *string `json:"review,omitempty" validate:"omitempty,max=1000"`
}

// createReviewHandler creates a review unless one already exists for the
// same user and business. The existence pre-check gives the descriptive
// client error; the unique index in the store catches the race where two
// creates for the same pair pass the check concurrently.
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	exists, err := app.store.Reviews.Exists(r.Context(), payload.UserID, payload.BusinessID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if exists {
		app.badRequestResponse(w, r, errors.New("review already exists for the provided user_id and business_id"))
		return
	}

	review := &store.Review{
		UserID:     payload.UserID,
		BusinessID: payload.BusinessID,
		Dollars:    payload.Dollars,
		Stars:      payload.Stars,
		Review:     payload.Review,
	}

	if err := app.store.Reviews.Create(r.Context(), review); err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.badRequestResponse(w, r, errors.New("review already exists for the provided user_id and business_id"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": review.ID})
}

func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	review, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("review with id %d doesn't exist", reviewID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateReviewHandler replaces a review's rating fields. The user and
// business identifiers are fixed at creation; a payload naming a different
// pair is rejected and the stored row stays untouched.
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("review with id %d doesn't exist", reviewID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if existing.UserID != payload.UserID || existing.BusinessID != payload.BusinessID {
		app.badRequestResponse(w, r, errors.New("user_id and business_id of a review cannot be changed"))
		return
	}

	existing.Dollars = payload.Dollars
	existing.Stars = payload.Stars
	existing.Review = payload.Review

	if err := app.store.Reviews.Update(r.Context(), existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("review with id %d doesn't exist", reviewID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "review updated"})
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	if err := app.store.Reviews.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("review with id %d doesn't exist", reviewID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	message := fmt.Sprintf("review with id %d has been deleted", reviewID)
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
