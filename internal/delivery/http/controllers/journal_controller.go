package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

// JournalCreateRequest is the request body for POST /journal
type JournalCreateRequest struct {
	ConcertID  string     `json:"concert_id"`
	EntryText  string     `json:"entry_text"`
	Mood       string     `json:"mood"`
	AttendedAt *time.Time `json:"attended_at"`
}

// Validate implements Validator.
func (j JournalCreateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(j.ConcertID) == "" {
		errs = append(errs, "concert_id is required")
	}
	if strings.TrimSpace(j.EntryText) == "" {
		errs = append(errs, "entry_text is required")
	}
	return errs
}

// JournalUpdateRequest is the request body for PATCH /journal/{entryID}.
// Absent fields are left untouched; badge_type is never editable.
type JournalUpdateRequest struct {
	EntryText  *string    `json:"entry_text"`
	Mood       *string    `json:"mood"`
	AttendedAt *time.Time `json:"attended_at"`
}

// Validate implements Validator.
func (j JournalUpdateRequest) Validate() []string {
	var errs []string
	if j.EntryText != nil && strings.TrimSpace(*j.EntryText) == "" {
		errs = append(errs, "entry_text must not be empty")
	}
	return errs
}

type JournalController struct {
	Logger  *slog.Logger
	Service domain.JournalService
}

func NewJournalController(logger *slog.Logger, svc domain.JournalService) *JournalController {
	return &JournalController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Log an attended concert
// @Description Create a journal entry for a stored concert. A badge is assigned from the user's history at creation time.
// @Tags journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JournalCreateRequest true "Journal entry"
// @Success 201 {object} helpers.APIResponse "data contains the entry with its badge"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /journal [post]
func (c *JournalController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req JournalCreateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	entry, err := c.Service.Create(r.Context(), userID, req.ConcertID, req.EntryText, req.Mood, req.AttendedAt)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "concert not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "entry_text is required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// List godoc
// @Summary List the current user's journal
// @Description Returns journal entries joined with their concerts, newest first.
// @Tags journal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains journal entries with concert details"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /journal [get]
func (c *JournalController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	entries, err := c.Service.ListByUserID(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if entries == nil {
		entries = []*domain.JournalEntryWithConcert{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, entries)
}

// Update godoc
// @Summary Edit a journal entry
// @Description Update entry text, mood, or attendance date. The badge is never recomputed.
// @Tags journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entryID path string true "Journal entry ID"
// @Param body body JournalUpdateRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /journal/{entryID} [patch]
func (c *JournalController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req JournalUpdateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	entry, err := c.Service.Update(r.Context(), r.PathValue("entryID"), userID, domain.JournalPatch{
		EntryText:  req.EntryText,
		Mood:       req.Mood,
		AttendedAt: req.AttendedAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "journal entry not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a journal entry
// @Tags journal
// @Produce json
// @Security BearerAuth
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /journal/{entryID} [delete]
func (c *JournalController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	err := c.Service.Delete(r.Context(), r.PathValue("entryID"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "journal entry not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
