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

// ChatRequest is the request body for POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// Validate implements Validator.
func (c ChatRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	if len(c.Message) > 1000 {
		errs = append(errs, "message must be at most 1000 characters")
	}
	return errs
}

type ChatController struct {
	Logger  *slog.Logger
	Service domain.AssistantService
}

func NewChatController(logger *slog.Logger, svc domain.AssistantService) *ChatController {
	return &ChatController{
		Logger:  logger,
		Service: svc,
	}
}

// Reply godoc
// @Summary Ask the concert assistant
// @Description Parses the message into a search intent, looks up shows, and falls back to a generated answer.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Free-text message"
// @Success 200 {object} helpers.APIResponse "data contains reply text and optional event HTML"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error"
// @Router /chat [post]
func (c *ChatController) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req ChatRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	reply, err := c.Service.Reply(r.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "message is required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeInternalError, "assistant reply failed")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, reply)
}
