package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

type WishlistController struct {
	Logger  *slog.Logger
	Service domain.WishlistService
}

func NewWishlistController(logger *slog.Logger, svc domain.WishlistService) *WishlistController {
	return &WishlistController{
		Logger:  logger,
		Service: svc,
	}
}

// Add godoc
// @Summary Save a concert to the wishlist
// @Description Upsert the event into the concert store and add a ticket watch for the current user.
// @Tags wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveEventRequest true "Normalized event payload"
// @Success 201 {object} helpers.APIResponse "data contains the concert and link id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist [post]
func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req SaveEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	concert, item, err := c.Service.Add(r.Context(), userID, req.toExternalEvent())
	if err != nil {
		if errors.Is(err, domain.ErrMissingExternalID) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "external_id is required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, SavedConcertResponse{Concert: concert, LinkID: item.ID})
}

// List godoc
// @Summary List the current user's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains wishlisted concerts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist [get]
func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	items, err := c.Service.ListByUserID(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.WishlistConcert{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, items)
}

// Remove godoc
// @Summary Remove a wishlist item
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param wishlistID path string true "Wishlist item ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /wishlist/{wishlistID} [delete]
func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	err := c.Service.Remove(r.Context(), r.PathValue("wishlistID"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "wishlist item not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
