package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"invest-appraisal/domain"
	"invest-appraisal/service"
)

type AppraisalHandler struct {
	service *service.AppraisalService
	logger  *zap.Logger
}

func NewAppraisalHandler(service *service.AppraisalService, logger *zap.Logger) *AppraisalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppraisalHandler{service: service, logger: logger}
}

type calculateRequest struct {
	domain.AppraisalInput
	Explain bool `json:"explain,omitempty"`
}

func (h *AppraisalHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req calculateRequest
	if err := decodeBody(r, &req); err != nil {
		h.logger.Debug("invalid appraisal request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Calculate(r.Context(), req.AppraisalInput, req.Explain)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// Defaults reports the year bounds and example flows a client should use.
func (h *AppraisalHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.service.Bounds())
}
