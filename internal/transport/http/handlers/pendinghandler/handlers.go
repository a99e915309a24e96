package pendinghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/pending"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *pending.Service
}

func NewHandler(service *pending.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pending-employee-updates", func(r chi.Router) {
		r.Post("/", h.handleSubmit)
		r.Get("/", h.handleList)
		r.Get("/pending", h.handleListPending)
		r.Get("/employee/{employeeID}", h.handleListForEmployee)
		r.Get("/stats", h.handleStats)
		r.Delete("/cleanup", h.handleCleanup)
		r.Get("/{updateID}", h.handleGet)
		r.Post("/{updateID}/approve", h.handleApprove)
		r.Post("/{updateID}/reject", h.handleReject)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req struct {
		EmployeeID int64          `json:"employeeId"`
		UpdateData map[string]any `json:"updateData"`
		Comments   string         `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if req.EmployeeID == 0 || len(req.UpdateData) == 0 {
		api.Fail(w, http.StatusBadRequest, "missing_fields", "employeeId and updateData are required", requestID)
		return
	}

	update, err := h.Service.Submit(r.Context(), user, req.EmployeeID, req.UpdateData, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, pending.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		case errors.Is(err, pending.ErrUnknownField):
			api.Fail(w, http.StatusBadRequest, "unknown_field", err.Error(), requestID)
		case errors.Is(err, pending.ErrNoChangesDetected):
			api.Fail(w, http.StatusBadRequest, "no_changes", "no changes detected", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "update_submit_failed", "failed to submit update request", requestID)
		}
		return
	}
	api.Created(w, update, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, pending.StatusPending)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, status string) {
	requestID := middleware.GetRequestID(r.Context())
	list, err := h.Service.Store.List(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "updates_list_failed", "failed to list update requests", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}
	list, err := h.Service.Store.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "updates_list_failed", "failed to list update requests", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	updateID, err := pathID(r, "updateID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid update id", requestID)
		return
	}
	update, err := h.Service.Store.GetByID(r.Context(), updateID)
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "update_not_found", "update request not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_get_failed", "failed to load update request", requestID)
		return
	}
	api.Success(w, update, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusBadRequest, "missing_reviewer", "reviewer identity is required", requestID)
		return
	}
	updateID, err := pathID(r, "updateID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid update id", requestID)
		return
	}

	result, err := h.Service.Approve(r.Context(), user, updateID, decodeComments(r))
	if err != nil {
		switch {
		case errors.Is(err, pending.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "update_not_found", "update request not found", requestID)
		case errors.Is(err, pending.ErrAlreadyReviewed):
			api.Fail(w, http.StatusConflict, "already_reviewed", "update request already reviewed", requestID)
		case errors.Is(err, pending.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "update_approve_failed", "failed to approve update request", requestID)
		}
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusBadRequest, "missing_reviewer", "reviewer identity is required", requestID)
		return
	}
	updateID, err := pathID(r, "updateID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid update id", requestID)
		return
	}

	update, err := h.Service.Reject(r.Context(), user, updateID, decodeComments(r))
	if err != nil {
		switch {
		case errors.Is(err, pending.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "update_not_found", "update request not found", requestID)
		case errors.Is(err, pending.ErrAlreadyReviewed):
			api.Fail(w, http.StatusConflict, "already_reviewed", "update request already reviewed", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "update_reject_failed", "failed to reject update request", requestID)
		}
		return
	}
	api.Success(w, update, requestID)
}

func (h *Handler) handleCleanup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	deleted, err := h.Service.Cleanup(r.Context(), h.Service.Retention)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cleanup_failed", "failed to clean up update requests", requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": deleted}, requestID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Store.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to load update request stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func decodeComments(r *http.Request) string {
	var req struct {
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.Comments
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
