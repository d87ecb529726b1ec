package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

// SavedConcertResponse is the response body for saving a concert to favorites
// or the wishlist.
type SavedConcertResponse struct {
	Concert *domain.Concert `json:"concert"`
	LinkID  string          `json:"link_id"`
}

type FavoriteController struct {
	Logger  *slog.Logger
	Service domain.FavoriteService
}

func NewFavoriteController(logger *slog.Logger, svc domain.FavoriteService) *FavoriteController {
	return &FavoriteController{
		Logger:  logger,
		Service: svc,
	}
}

// Add godoc
// @Summary Save a concert to favorites
// @Description Upsert the event into the concert store and link it to the current user. Saving the same event twice is a no-op.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveEventRequest true "Normalized event payload"
// @Success 201 {object} helpers.APIResponse "data contains the concert and link id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites [post]
func (c *FavoriteController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req SaveEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	concert, favorite, err := c.Service.Add(r.Context(), userID, req.toExternalEvent())
	if err != nil {
		if errors.Is(err, domain.ErrMissingExternalID) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "external_id is required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, SavedConcertResponse{Concert: concert, LinkID: favorite.ID})
}

// List godoc
// @Summary List the current user's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains favorite concerts with the caller's reviews"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites [get]
func (c *FavoriteController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	favorites, err := c.Service.ListByUserID(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if favorites == nil {
		favorites = []*domain.FavoriteConcert{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, favorites)
}

// Remove godoc
// @Summary Remove a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param favoriteID path string true "Favorite ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites/{favoriteID} [delete]
func (c *FavoriteController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	err := c.Service.Remove(r.Context(), r.PathValue("favoriteID"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "favorite not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
