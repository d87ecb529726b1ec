package controllers

import (
	"log/slog"
	"net/http"

	h "trackmygig/internal/delivery/http/helpers"
	m "trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

// NotificationIDsRequest selects notifications by id. An empty or absent list
// means all of the user's notifications.
type NotificationIDsRequest struct {
	IDs []string `json:"ids"`
}

// NotificationListResponse is the response body for GET /notifications
type NotificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    h.PaginationMeta       `json:"pagination"`
}

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List the current user's notifications
// @Description Returns notifications newest first, paginated.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains notifications and pagination metadata"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}

	params := h.ParsePagination(r)
	notifications, total, err := c.Service.ListByUserID(r.Context(), userID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, NotificationListResponse{
		Notifications: notifications,
		Pagination:    h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MarkRead godoc
// @Summary Mark notifications as read
// @Description Marks the given notification ids as read, or all of the user's notifications when ids is empty.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NotificationIDsRequest false "Notification ids (empty for all)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications/read [patch]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req NotificationIDsRequest
	if r.ContentLength > 0 && !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.MarkRead(r.Context(), userID, req.IDs); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "read"})
}

// Delete godoc
// @Summary Delete notifications
// @Description Deletes the given notification ids, or all of the user's notifications when ids is empty.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NotificationIDsRequest false "Notification ids (empty for all)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /notifications [delete]
func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing user")
		return
	}
	var req NotificationIDsRequest
	if r.ContentLength > 0 && !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.Delete(r.Context(), userID, req.IDs); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}
