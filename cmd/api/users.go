package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bizdir/internal/store"

	"github.com/go-chi/chi/v5"
)

// The user-scoped listings return every matching row unpaginated. An empty
// result is a client error here, matching the directory's contract of 400
// with a descriptive message.

func (app *application) getUserBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	businesses, err := app.store.Businesses.GetByOwner(r.Context(), userID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if len(businesses) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no businesses found for user with id %d", userID))
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string][]store.Business{"businesses": businesses}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getUserReviewsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	reviews, err := app.store.Reviews.GetByUser(r.Context(), userID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if len(reviews) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no reviews found for user with id %d", userID))
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string][]store.Review{"reviews": reviews}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getUserPhotosHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid user ID"))
		return
	}

	photos, err := app.store.Photos.GetByUser(r.Context(), userID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if len(photos) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no photos found for user with id %d", userID))
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string][]store.Photo{"photos": photos}); err != nil {
		app.internalServerError(w, r, err)
	}
}
