package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"invest-appraisal/domain"
	"invest-appraisal/service"
)

type SessionHandler struct {
	service *service.SessionService
	logger  *zap.Logger
}

func NewSessionHandler(service *service.SessionService, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{service: service, logger: logger}
}

// Register mounts the session routes under /appraisal/sessions. wrap is
// applied to every route; pass nil for none.
func (h *SessionHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(next http.Handler) http.Handler { return next }
	}
	routes := map[string]http.HandlerFunc{
		"POST /appraisal/sessions":                     h.Create,
		"GET /appraisal/sessions/{id}":                 h.Get,
		"DELETE /appraisal/sessions/{id}":              h.Delete,
		"POST /appraisal/sessions/{id}/years":          h.AppendYear,
		"DELETE /appraisal/sessions/{id}/years":        h.RemoveLastYear,
		"PUT /appraisal/sessions/{id}/years":           h.Resize,
		"PUT /appraisal/sessions/{id}/flows/{year}":    h.SetFlow,
		"DELETE /appraisal/sessions/{id}/flows/{year}": h.ClearFlow,
		"POST /appraisal/sessions/{id}/calculate":      h.Calculate,
	}
	for pattern, fn := range routes {
		mux.Handle(pattern, wrap(fn))
	}
}

type sessionView struct {
	ID        string        `json:"id"`
	Years     int           `json:"years"`
	MinYears  int           `json:"min_years"`
	MaxYears  int           `json:"max_years"`
	CanAppend bool          `json:"can_append"`
	CanRemove bool          `json:"can_remove"`
	Flows     []domain.Flow `json:"flows"`
	Changed   *bool         `json:"changed,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func newSessionView(s domain.Session) sessionView {
	return sessionView{
		ID:        s.ID,
		Years:     s.Series.Count(),
		MinYears:  s.Series.MinYears,
		MaxYears:  s.Series.MaxYears,
		CanAppend: s.Series.CanAppend(),
		CanRemove: s.Series.CanRemove(),
		Flows:     s.Series.Values(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type resizeRequest struct {
	Count int `json:"count"`
}

type flowRequest struct {
	Amount *float64 `json:"amount"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.SessionInput
	if err := decodeBody(r, &input); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, newSessionView(session))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newSessionView(session))
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) AppendYear(w http.ResponseWriter, r *http.Request) {
	session, changed, err := h.service.AppendYear(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	view := newSessionView(session)
	view.Changed = &changed
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *SessionHandler) RemoveLastYear(w http.ResponseWriter, r *http.Request) {
	session, changed, err := h.service.RemoveLastYear(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	view := newSessionView(session)
	view.Changed = &changed
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *SessionHandler) Resize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Resize(r.Context(), r.PathValue("id"), req.Count)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newSessionView(session))
}

func (h *SessionHandler) SetFlow(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	var req flowRequest
	if err := decodeBody(r, &req); err != nil || req.Amount == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.SetFlow(r.Context(), r.PathValue("id"), year, *req.Amount)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newSessionView(session))
}

func (h *SessionHandler) ClearFlow(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	session, err := h.service.ClearFlow(r.Context(), r.PathValue("id"), year)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newSessionView(session))
}

func (h *SessionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.SessionCalculationInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Calculate(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
