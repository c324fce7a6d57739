package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
	"github.com/hazyhaar/abbrev-registry/pkg/kit"
)

// NewRouter returns an http.Handler with all abbreviation API routes.
func NewRouter(reg *dict.Registry, runs *RunStore, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		ep:   newEndpoints(reg, runs, logger),
		reg:  reg,
		runs: runs,
	}

	mux.HandleFunc("GET /v1/abbreviate/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/abbreviate/batch", h.handleBatch)
	mux.HandleFunc("GET /v1/abbreviate", h.handleAbbreviate)
	mux.HandleFunc("POST /v1/runs", h.handleBeginRun)
	mux.HandleFunc("GET /v1/runs/{id}", h.handleRun(h.ep.runGet))
	mux.HandleFunc("POST /v1/runs/{id}/reset", h.handleRun(h.ep.runReset))
	mux.HandleFunc("DELETE /v1/runs/{id}", h.handleRunEnd)
	mux.HandleFunc("POST /v1/runs/{id}/resolve", h.handleRunResolve)
	mux.HandleFunc("GET /v1/dicts", h.handleListDicts)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	ep   *endpoints
	reg  *dict.Registry
	runs *RunStore
}

// --- abbreviate single key ---

func (h *handler) handleAbbreviate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("key") {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}
	resp, err := h.ep.abbreviate(r.Context(), &abbreviateReq{
		Category:     q.Get("category"),
		Jurisdiction: q.Get("jurisdiction"),
		Key:          q.Get("key"),
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- abbreviate batch ---

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req batchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.ep.batch(r.Context(), &req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- runs ---

func (h *handler) handleBeginRun(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.beginRun(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) handleRunResolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)
	var req abbreviateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id := r.PathValue("id")
	resp, err := h.ep.runResolve(kit.WithRunID(r.Context(), id), &runResolveReq{RunID: id, abbreviateReq: req})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleRun(e kit.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		resp, err := e(kit.WithRunID(r.Context(), id), &runReq{RunID: id})
		if err != nil {
			writeEndpointError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *handler) handleRunEnd(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.ep.runEnd(kit.WithRunID(r.Context(), id), &runReq{RunID: id}); err != nil {
		writeEndpointError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- list dicts ---

func (h *handler) handleListDicts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.listDicts(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status        string   `json:"status"`
	Lists         int      `json:"lists"`
	TotalEntries  int      `json:"total_entries"`
	Jurisdictions []string `json:"jurisdictions"`
	Runs          int      `json:"runs"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	d := h.reg.Dictionary()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Lists:         h.reg.DictCount(),
		TotalEntries:  d.Len(),
		Jurisdictions: d.Jurisdictions(),
		Runs:          h.runs.Len(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeEndpointError maps endpoint errors to HTTP status codes.
func writeEndpointError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRunNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, abbrev.ErrUnknownTable):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// requestID tags each request with the caller's X-Request-ID or a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRequestID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
