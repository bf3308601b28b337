package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bizdir/internal/store"

	"github.com/go-chi/chi/v5"
)

type photoPayload struct {
	UserID     int64   `json:"user_id" validate:"required"`
	BusinessID int64   `json:"business_id" validate:"required"`
	Caption    *string `json:"caption,omitempty" validate:"omitempty,max=255"`
}

func (app *application) createPhotoHandler(w http.ResponseWriter, r *http.Request) {
	var payload photoPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	photo := &store.Photo{
		UserID:     payload.UserID,
		BusinessID: payload.BusinessID,
		Caption:    payload.Caption,
	}

	if err := app.store.Photos.Create(r.Context(), photo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": photo.ID})
}

func (app *application) getPhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid photo ID"))
		return
	}

	photo, err := app.store.Photos.GetByID(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("photo with id %d doesn't exist", photoID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, photo); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updatePhotoHandler replaces a photo's caption. As with reviews, the
// user/business pair is immutable after creation.
func (app *application) updatePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid photo ID"))
		return
	}

	var payload photoPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.store.Photos.GetByID(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("photo with id %d doesn't exist", photoID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if existing.UserID != payload.UserID || existing.BusinessID != payload.BusinessID {
		app.badRequestResponse(w, r, errors.New("user_id and business_id of a photo cannot be changed"))
		return
	}

	existing.Caption = payload.Caption

	if err := app.store.Photos.Update(r.Context(), existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("photo with id %d doesn't exist", photoID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "photo updated"})
}

func (app *application) deletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid photo ID"))
		return
	}

	if err := app.store.Photos.Delete(r.Context(), photoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, fmt.Errorf("photo with id %d doesn't exist", photoID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	message := fmt.Sprintf("photo with id %d has been deleted", photoID)
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
