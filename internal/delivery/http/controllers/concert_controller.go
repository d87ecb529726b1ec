package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

type ConcertController struct {
	Logger  *slog.Logger
	Service domain.ConcertService
}

func NewConcertController(logger *slog.Logger, svc domain.ConcertService) *ConcertController {
	return &ConcertController{
		Logger:  logger,
		Service: svc,
	}
}

// Search godoc
// @Summary Search upcoming concerts
// @Description Search the ticket provider by keyword, city, genre, and date window.
// @Tags concerts
// @Produce json
// @Param keyword query string false "Free-text keyword"
// @Param city query string false "City name"
// @Param genre query string false "Genre name"
// @Param start query string false "Start date-time (ISO 8601)"
// @Param end query string false "End date-time (ISO 8601)"
// @Param size query int false "Max results (default 20)"
// @Success 200 {object} helpers.APIResponse "data contains a list of events"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/search [get]
func (c *ConcertController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.TicketSearchQuery{
		Keyword:       q.Get("keyword"),
		City:          q.Get("city"),
		Genre:         q.Get("genre"),
		StartDateTime: q.Get("start"),
		EndDateTime:   q.Get("end"),
	}
	if s := q.Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			query.Size = v
		}
	}

	events, err := c.Service.Search(r.Context(), query)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeInternalError, "event search failed")
		return
	}
	if events == nil {
		events = []domain.ExternalEvent{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Recommended godoc
// @Summary Recommended concerts for the current user
// @Description Search the ticket provider using the user's favorite artists, genre, and city.
// @Tags concerts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a list of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/recommended [get]
func (c *ConcertController) Recommended(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	events, err := c.Service.Recommended(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeInternalError, "event search failed")
		return
	}
	if events == nil {
		events = []domain.ExternalEvent{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get a stored concert
// @Tags concerts
// @Produce json
// @Param concertID path string true "Concert ID"
// @Success 200 {object} helpers.APIResponse "data contains the concert"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/{concertID} [get]
func (c *ConcertController) GetByID(w http.ResponseWriter, r *http.Request) {
	concert, err := c.Service.GetByID(r.Context(), r.PathValue("concertID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "concert not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, concert)
}

// SummaryResponse is the response body for GET /concerts/{concertID}/summary
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// Summary godoc
// @Summary AI hype summary for a concert
// @Tags concerts
// @Produce json
// @Param concertID path string true "Concert ID"
// @Success 200 {object} helpers.APIResponse "data contains the summary text"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error"
// @Router /concerts/{concertID}/summary [get]
func (c *ConcertController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.Summary(r.Context(), r.PathValue("concertID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "concert not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeInternalError, "summary generation failed")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SummaryResponse{Summary: summary})
}
