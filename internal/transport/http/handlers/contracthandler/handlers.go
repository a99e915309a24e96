package contracthandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/contracts"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *contracts.Service
	Window  time.Duration
}

func NewHandler(service *contracts.Service, window time.Duration) *Handler {
	return &Handler{Service: service, Window: window}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/expiring", h.handleExpiring)
		r.Post("/notify", h.handleNotify)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contracts_list_failed", "failed to list contracts", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req struct {
		EmployeeID int64  `json:"employeeId"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if req.EmployeeID == 0 || err1 != nil || err2 != nil || end.Before(start) {
		api.Fail(w, http.StatusBadRequest, "invalid_contract", "employeeId and a valid date range are required", requestID)
		return
	}
	id, err := h.Service.Create(r.Context(), req.EmployeeID, start, end)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contract_create_failed", "failed to create contract", requestID)
		return
	}
	api.Created(w, map[string]any{"contractId": id}, requestID)
}

func (h *Handler) handleExpiring(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	list, err := h.Service.Expiring(r.Context(), h.Window)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contracts_list_failed", "failed to list expiring contracts", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleNotify(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	notified, err := h.Service.NotifyExpiring(r.Context(), h.Window)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notify_failed", "failed to send contract notices", requestID)
		return
	}
	api.Success(w, map[string]any{"notified": notified}, requestID)
}
