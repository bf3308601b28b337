package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"bizdir/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBusinesses(app *application, n int) *businessStoreStub {
	bs := app.store.Businesses.(*businessStoreStub)
	for i := 0; i < n; i++ {
		bs.seed(store.Business{
			OwnerID:     int64(i%3 + 1),
			Name:        fmt.Sprintf("Business %d", i+1),
			Address:     "100 Main St",
			City:        "Corvallis",
			State:       "OR",
			Zip:         "97330",
			Phone:       "541-555-0100",
			Category:    "Restaurant",
			Subcategory: "Pizza",
		})
	}
	return bs
}

func validBusinessBody() map[string]any {
	return map[string]any{
		"owner_id":    int64(7),
		"name":        "Block 15",
		"address":     "300 SW Jefferson Ave",
		"city":        "Corvallis",
		"state":       "OR",
		"zip":         "97333",
		"phone":       "541-555-0199",
		"category":    "Restaurant",
		"subcategory": "Brewpub",
	}
}

func TestListBusinessesPagination(t *testing.T) {
	tests := []struct {
		name       string
		seeded     int
		query      string
		wantPage   int
		wantRows   int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"default first page", 25, "", 1, 10, 3, true, false},
		{"middle page", 25, "?page=2", 2, 10, 3, true, true},
		{"last page", 25, "?page=3", 3, 5, 3, false, true},
		{"page past the end is clamped", 25, "?page=99", 3, 5, 3, false, true},
		{"non-positive page resolves to one", 25, "?page=-4", 1, 10, 3, true, false},
		{"garbage page resolves to one", 25, "?page=abc", 1, 10, 3, true, false},
		{"empty collection", 0, "?page=5", 1, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()
			seedBusinesses(app, tt.seeded)

			req, _ := http.NewRequest(http.MethodGet, "/v1/businesses"+tt.query, nil)
			rr := executeRequest(app, req)
			require.Equal(t, http.StatusOK, rr.Code)

			var got businessListResponse
			require.NoError(t, json.Unmarshal(readBody(rr), &got))

			assert.Equal(t, tt.wantPage, got.PageNumber)
			assert.Len(t, got.Businesses, tt.wantRows)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, 10, got.NumPerPage)
			assert.Equal(t, tt.seeded, got.TotalCount)

			if tt.wantNext {
				assert.Equal(t, fmt.Sprintf("/v1/businesses?page=%d", tt.wantPage+1), got.Links.NextPage)
				assert.Equal(t, fmt.Sprintf("/v1/businesses?page=%d", tt.wantPages), got.Links.LastPage)
			} else {
				assert.Empty(t, got.Links.NextPage)
				assert.Empty(t, got.Links.LastPage)
			}
			if tt.wantPrev {
				assert.Equal(t, fmt.Sprintf("/v1/businesses?page=%d", tt.wantPage-1), got.Links.PrevPage)
				assert.Equal(t, "/v1/businesses?page=1", got.Links.FirstPage)
			} else {
				assert.Empty(t, got.Links.PrevPage)
				assert.Empty(t, got.Links.FirstPage)
			}
		})
	}
}

func TestCreateBusiness(t *testing.T) {
	t.Run("valid payload round-trips", func(t *testing.T) {
		app := newTestApplication()

		body, _ := json.Marshal(validBusinessBody())
		req, _ := http.NewRequest(http.MethodPost, "/v1/businesses", bytes.NewReader(body))
		rr := executeRequest(app, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		var created map[string]int64
		require.NoError(t, json.Unmarshal(readBody(rr), &created))
		require.Equal(t, int64(1), created["id"])

		req, _ = http.NewRequest(http.MethodGet, "/v1/businesses/1", nil)
		rr = executeRequest(app, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got struct {
			Business store.Business `json:"business"`
		}
		require.NoError(t, json.Unmarshal(readBody(rr), &got))
		assert.Equal(t, "Block 15", got.Business.Name)
		assert.Equal(t, int64(7), got.Business.OwnerID)
		assert.Equal(t, "97333", got.Business.Zip)
	})

	invalid := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing name", func(m map[string]any) { delete(m, "name") }},
		{"missing owner", func(m map[string]any) { delete(m, "owner_id") }},
		{"malformed zip", func(m map[string]any) { m["zip"] = "not-a-zip" }},
		{"malformed email", func(m map[string]any) { m["email"] = "not-an-email" }},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			payload := validBusinessBody()
			tt.mutate(payload)
			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest(http.MethodPost, "/v1/businesses", bytes.NewReader(body))
			rr := executeRequest(app, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var errBody map[string]string
			require.NoError(t, json.Unmarshal(readBody(rr), &errBody))
			assert.NotEmpty(t, errBody["error"])

			bs := app.store.Businesses.(*businessStoreStub)
			assert.Empty(t, bs.rows)
		})
	}
}

func TestGetBusinessAggregatesAssociations(t *testing.T) {
	app := newTestApplication()
	seedBusinesses(app, 2)

	rs := app.store.Reviews.(*reviewStoreStub)
	rs.seed(store.Review{UserID: 10, BusinessID: 1, Dollars: 2, Stars: 4})
	rs.seed(store.Review{UserID: 11, BusinessID: 1, Dollars: 3, Stars: 5})
	rs.seed(store.Review{UserID: 10, BusinessID: 2, Dollars: 1, Stars: 2})

	ps := app.store.Photos.(*photoStoreStub)
	ps.seed(store.Photo{UserID: 10, BusinessID: 1})
	ps.seed(store.Photo{UserID: 12, BusinessID: 2})

	req, _ := http.NewRequest(http.MethodGet, "/v1/businesses/1", nil)
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Business store.Business `json:"business"`
		Reviews  []store.Review `json:"reviews"`
		Photos   []store.Photo  `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(readBody(rr), &got))

	assert.Equal(t, int64(1), got.Business.ID)
	require.Len(t, got.Reviews, 2)
	for _, rv := range got.Reviews {
		assert.Equal(t, int64(1), rv.BusinessID)
	}
	require.Len(t, got.Photos, 1)
	assert.Equal(t, int64(1), got.Photos[0].BusinessID)
}

func TestGetBusinessNotFound(t *testing.T) {
	app := newTestApplication()

	req, _ := http.NewRequest(http.MethodGet, "/v1/businesses/42", nil)
	rr := executeRequest(app, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(readBody(rr), &errBody))
	assert.Contains(t, errBody["error"], "42")
}

func TestUpdateBusiness(t *testing.T) {
	t.Run("replaces the stored document", func(t *testing.T) {
		app := newTestApplication()
		bs := seedBusinesses(app, 1)

		payload := validBusinessBody()
		payload["name"] = "Renamed"
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPut, "/v1/businesses/1", bytes.NewReader(body))
		rr := executeRequest(app, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		assert.Equal(t, "Renamed", bs.rows[1].Name)
		assert.Equal(t, int64(7), bs.rows[1].OwnerID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		app := newTestApplication()

		body, _ := json.Marshal(validBusinessBody())
		req, _ := http.NewRequest(http.MethodPut, "/v1/businesses/9", bytes.NewReader(body))
		rr := executeRequest(app, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteBusiness(t *testing.T) {
	app := newTestApplication()
	bs := seedBusinesses(app, 2)

	req, _ := http.NewRequest(http.MethodDelete, "/v1/businesses/1", nil)
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(readBody(rr), &got))
	assert.Contains(t, got["message"], "deleted")
	assert.Len(t, bs.rows, 1)

	// A second delete of the same id reports not found.
	req, _ = http.NewRequest(http.MethodDelete, "/v1/businesses/1", nil)
	rr = executeRequest(app, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, bs.rows, 1)
}
