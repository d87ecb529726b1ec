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

// ReviewRequest is the request body for POST /concerts/{concertID}/reviews
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (rr ReviewRequest) Validate() []string {
	var errs []string
	if rr.Rating < 1 || rr.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if len(rr.Comment) > 2000 {
		errs = append(errs, "comment must be at most 2000 characters")
	}
	return errs
}

// ReviewListResponse is the response body for GET /concerts/{concertID}/reviews
type ReviewListResponse struct {
	Reviews []*domain.ConcertReview `json:"reviews"`
	Summary *domain.RatingSummary   `json:"summary"`
}

type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{
		Logger:  logger,
		Service: svc,
	}
}

// Save godoc
// @Summary Save a review for a concert
// @Description Create or replace the current user's review. One review per user per concert.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param concertID path string true "Concert ID"
// @Param body body ReviewRequest true "Rating and comment"
// @Success 201 {object} helpers.APIResponse "data contains the saved review"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/{concertID}/reviews [post]
func (c *ReviewController) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req ReviewRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	review := &domain.Review{
		UserID:    userID,
		ConcertID: r.PathValue("concertID"),
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := c.Service.Save(r.Context(), review); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "concert not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "rating must be between 1 and 5")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, review)
}

// List godoc
// @Summary List reviews for a concert
// @Description Returns all reviews with reviewer names, plus the average rating and count.
// @Tags reviews
// @Produce json
// @Param concertID path string true "Concert ID"
// @Success 200 {object} helpers.APIResponse "data contains reviews and the rating summary"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/{concertID}/reviews [get]
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, summary, err := c.Service.ListByConcertID(r.Context(), r.PathValue("concertID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if reviews == nil {
		reviews = []*domain.ConcertReview{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ReviewListResponse{Reviews: reviews, Summary: summary})
}
