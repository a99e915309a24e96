package evaluationhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/evaluation"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service   *evaluation.Service
	ReportDir string
}

func NewHandler(service *evaluation.Service, reportDir string) *Handler {
	return &Handler{Service: service, ReportDir: reportDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/reset", h.handleReset)
		r.Get("/choices", h.handleChoices)
		r.Get("/history", h.handleHistory)
		r.Get("/history/{historyID}", h.handleHistoryByID)
		r.Get("/{evaluationID}", h.handleGet)
		r.Get("/{evaluationID}/answers", h.handleAnswers)
		r.Get("/{evaluationID}/report", h.handleReport)
	})
	r.Get("/employees/{employeeID}/evaluations", h.handleListForEmployee)
	r.Get("/employees/{employeeID}/evaluations/history", h.handleHistoryForEmployee)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var in evaluation.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	result, err := h.Service.Create(r.Context(), user, in)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrValidation), errors.Is(err, evaluation.ErrInvalidScoreRange):
			api.Fail(w, http.StatusBadRequest, "invalid_evaluation", err.Error(), requestID)
		case errors.Is(err, evaluation.ErrEvaluatorNotFound):
			api.Fail(w, http.StatusBadRequest, "evaluator_not_found", err.Error(), requestID)
		case errors.Is(err, evaluation.ErrDuplicateEvaluation):
			api.Fail(w, http.StatusConflict, "duplicate_evaluation", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "evaluation_create_failed", "failed to create evaluation", requestID)
		}
		return
	}
	api.Created(w, result, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluations_list_failed", "failed to list evaluations", requestID)
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
	list, err := h.Service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluations_list_failed", "failed to list evaluations", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, err := pathID(r, "evaluationID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid evaluation id", requestID)
		return
	}
	detail, err := h.Service.GetByID(r.Context(), evaluationID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evaluation_get_failed", "failed to load evaluation", requestID)
		return
	}
	api.Success(w, detail, requestID)
}

func (h *Handler) handleAnswers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, err := pathID(r, "evaluationID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid evaluation id", requestID)
		return
	}
	answers, err := h.Service.AnswersByID(r.Context(), evaluationID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evaluation_answers_failed", "failed to load answers", requestID)
		return
	}
	api.Success(w, answers, requestID)
}

func (h *Handler) handleChoices(w http.ResponseWriter, r *http.Request) {
	api.Success(w, evaluation.StandardChoices, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	result, err := h.Service.Reset(r.Context(), user)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_reset_failed", "failed to reset evaluations", requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	records, err := h.Service.History(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_list_failed", "failed to list evaluation history", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleHistoryForEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, err := pathID(r, "employeeID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}
	records, err := h.Service.HistoryForEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_list_failed", "failed to list evaluation history", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleHistoryByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	historyID, err := pathID(r, "historyID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid history id", requestID)
		return
	}
	record, err := h.Service.HistoryByID(r.Context(), historyID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "history_not_found", "archived evaluation not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "history_get_failed", "failed to load archived evaluation", requestID)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, err := pathID(r, "evaluationID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid evaluation id", requestID)
		return
	}
	path, err := h.Service.GenerateReportPDF(r.Context(), evaluationID, h.ReportDir)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "evaluation_not_found", "evaluation not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
