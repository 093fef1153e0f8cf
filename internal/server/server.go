// Package server exposes the submission workflow over HTTP for a form front end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Mayankdev0923/Energon/internal/config"
	"github.com/Mayankdev0923/Energon/internal/locations"
	"github.com/Mayankdev0923/Energon/internal/model"
	"github.com/Mayankdev0923/Energon/internal/submission"
)

// Workflow is the controller surface the handlers drive.
type Workflow interface {
	Draft() submission.Draft
	Known() locations.Collection
	State() submission.State
	UpdateField(f submission.Field, raw string) submission.Draft
	RequestCurrentLocation(ctx context.Context) (submission.Result, error)
	Submit(ctx context.Context) (submission.Result, error)
}

type handler struct {
	wf Workflow
}

// New builds the router.
func New(wf Workflow, cfg config.ServerConfig) http.Handler {
	h := &handler{wf: wf}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Route("/draft", func(r chi.Router) {
		r.Get("/", h.getDraft)
		r.Put("/fields/{field}", h.putField)
		r.Post("/location", h.locate)
		r.Post("/submit", h.submit)
	})
	return r
}

// response is the body of every /draft endpoint.
type response struct {
	Draft  submission.Draft    `json:"draft"`
	State  string              `json:"state"`
	Known  int                 `json:"known"`
	Notice *submission.Notice  `json:"notice,omitempty"`
	Record *model.FuelLocation `json:"record,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func (h *handler) respond(w http.ResponseWriter, status int, res submission.Result, err error) {
	body := response{
		Draft:  res.Draft,
		State:  h.wf.State().String(),
		Known:  h.wf.Known().Len(),
		Notice: res.Notice,
		Record: res.Record,
	}
	if err != nil {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getDraft(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, submission.Result{Draft: h.wf.Draft()}, nil)
}

// maxFieldBody caps a PUT /draft/fields body. One field value is a short
// string.
const maxFieldBody = 4 << 10

type fieldRequest struct {
	Value string `json:"value"`
}

func (h *handler) putField(w http.ResponseWriter, r *http.Request) {
	f, err := submission.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		h.respond(w, http.StatusBadRequest, submission.Result{Draft: h.wf.Draft()}, err)
		return
	}

	var req fieldRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxFieldBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	d := h.wf.UpdateField(f, req.Value)
	h.respond(w, http.StatusOK, submission.Result{Draft: d}, nil)
}

func (h *handler) locate(w http.ResponseWriter, r *http.Request) {
	res, err := h.wf.RequestCurrentLocation(r.Context())
	h.respond(w, statusFor(err), res, err)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	res, err := h.wf.Submit(r.Context())
	status := statusFor(err)
	if err == nil {
		status = http.StatusCreated
	}
	h.respond(w, status, res, err)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, submission.ErrValidationMissing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, submission.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, submission.ErrCapabilityUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, submission.ErrBackendRejected), errors.Is(err, submission.ErrTransportFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: write response", zap.Error(err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
