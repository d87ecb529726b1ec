package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

// ProfileResponse is the response body for GET /profile
type ProfileResponse struct {
	User  *domain.User      `json:"user"`
	Stats *domain.UserStats `json:"stats"`
}

// ProfileUpdateRequest is the request body for PATCH /profile.
// Absent fields are left untouched.
type ProfileUpdateRequest struct {
	FullName        *string `json:"full_name"`
	City            *string `json:"city"`
	FavoriteArtists *string `json:"favorite_artists"`
	FavoriteGenre   *string `json:"favorite_genre"`
}

// Validate implements Validator.
func (p ProfileUpdateRequest) Validate() []string {
	var errs []string
	if p.FullName != nil && strings.TrimSpace(*p.FullName) == "" {
		errs = append(errs, "full_name must not be empty")
	}
	return errs
}

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewProfileController(logger *slog.Logger, svc domain.UserService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get the current user's profile
// @Description Returns the user and their stats: favorites count, journal count, and distinct badges earned.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user and stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	user, stats, err := c.Service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ProfileResponse{User: user, Stats: stats})
}

// Update godoc
// @Summary Update the current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [patch]
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req ProfileUpdateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		FullName:        req.FullName,
		City:            req.City,
		FavoriteArtists: req.FavoriteArtists,
		FavoriteGenre:   req.FavoriteGenre,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}
