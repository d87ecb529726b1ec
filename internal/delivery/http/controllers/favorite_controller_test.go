package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackmygig/internal/delivery/http/helpers"
	"trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFavoriteService implements domain.FavoriteService for handler tests.
type fakeFavoriteService struct {
	addErr     error
	listErr    error
	removeErr  error
	concert    *domain.Concert
	favorite   *domain.Favorite
	favorites  []*domain.FavoriteConcert
	lastUserID string
	lastEvent  domain.ExternalEvent
}

func (f *fakeFavoriteService) Add(_ context.Context, userID string, event domain.ExternalEvent) (*domain.Concert, *domain.Favorite, error) {
	f.lastUserID = userID
	f.lastEvent = event
	if f.addErr != nil {
		return nil, nil, f.addErr
	}
	return f.concert, f.favorite, nil
}

func (f *fakeFavoriteService) ListByUserID(_ context.Context, userID string) ([]*domain.FavoriteConcert, error) {
	f.lastUserID = userID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.favorites, nil
}

func (f *fakeFavoriteService) Remove(_ context.Context, _, userID string) error {
	f.lastUserID = userID
	return f.removeErr
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
}

func TestFavoriteController_Add(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		authed     bool
		service    *fakeFavoriteService
		wantStatus int
		wantCode   string
	}{
		{
			name:   "success",
			body:   `{"external_id":"EVT1","artist":"The Midnight","min_price":45.5}`,
			authed: true,
			service: &fakeFavoriteService{
				concert:  &domain.Concert{ID: "concert-1", ExternalID: "EVT1", Artist: "The Midnight"},
				favorite: &domain.Favorite{ID: "fav-1", UserID: "user-1", ConcertID: "concert-1"},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing external_id",
			body:       `{"artist":"The Midnight"}`,
			authed:     true,
			service:    &fakeFavoriteService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown field rejected",
			body:       `{"external_id":"EVT1","bogus":true}`,
			authed:     true,
			service:    &fakeFavoriteService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unauthenticated",
			body:       `{"external_id":"EVT1"}`,
			authed:     false,
			service:    &fakeFavoriteService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewFavoriteController(testLogger, tt.service)
			var req *http.Request
			if tt.authed {
				req = authedRequest(http.MethodPost, "http://test/favorites", tt.body)
			} else {
				req = httptest.NewRequest(http.MethodPost, "http://test/favorites", bytes.NewBufferString(tt.body))
			}
			rr := httptest.NewRecorder()

			controller.Add(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			assert.Nil(t, envelope.Error)
			assert.Equal(t, "user-1", tt.service.lastUserID)
			assert.Equal(t, "EVT1", tt.service.lastEvent.ExternalID)
		})
	}
}

func TestFavoriteController_List_EmptyIsJSONArray(t *testing.T) {
	controller := NewFavoriteController(testLogger, &fakeFavoriteService{})
	req := authedRequest(http.MethodGet, "http://test/favorites", "")
	rr := httptest.NewRecorder()

	controller.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"data":[]`)
}

func TestFavoriteController_Remove_NotFound(t *testing.T) {
	controller := NewFavoriteController(testLogger, &fakeFavoriteService{removeErr: domain.ErrNotFound})
	req := authedRequest(http.MethodDelete, "http://test/favorites/missing", "")
	rr := httptest.NewRecorder()

	controller.Remove(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}
