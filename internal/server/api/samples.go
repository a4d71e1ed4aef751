// Package api provides HTTP API handlers for the Rangoli air drawing system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/rangoli/internal/store"
	"github.com/ayusman/rangoli/internal/tracker"
)

// SamplesHandler handles HTTP requests for training sample resources.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/samples, /api/samples/counts, /api/samples/export,
// /api/samples/{batchID}
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/samples")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case path == "counts":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.counts(w, r)
	case path == "export":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.export(w, r)
	default:
		// Item endpoint: /api/samples/{batchID}
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.deleteBatch(w, r, path)
	}
}

// Request and response types

type createSamplesRequest struct {
	Label string             `json:"label"`
	Poses []tracker.HandPose `json:"poses"`
}

type createSamplesResponse struct {
	BatchID string `json:"batch_id"`
	Count   int    `json:"count"`
}

type listSamplesResponse struct {
	Samples []store.Sample `json:"samples"`
}

type exportResponse struct {
	Records []store.TrainingRecord `json:"records"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// list handles GET /api/samples with an optional label filter.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request) {
	samples, err := h.store.Samples().List(r.URL.Query().Get("label"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	if samples == nil {
		samples = []store.Sample{}
	}
	writeJSON(w, http.StatusOK, listSamplesResponse{Samples: samples})
}

// create handles POST /api/samples.
func (h *SamplesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "Label is required")
		return
	}
	if len(req.Poses) == 0 {
		writeError(w, http.StatusBadRequest, "At least one pose is required")
		return
	}

	batchID := uuid.New().String()
	n, err := h.store.Samples().Create(batchID, req.Label, req.Poses)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save samples")
		return
	}

	writeJSON(w, http.StatusCreated, createSamplesResponse{BatchID: batchID, Count: n})
}

// counts handles GET /api/samples/counts.
func (h *SamplesHandler) counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Samples().CountByLabel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count samples")
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// export handles GET /api/samples/export.
func (h *SamplesHandler) export(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Samples().ExportTraining()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export samples")
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Records: records})
}

// deleteBatch handles DELETE /api/samples/{batchID}.
func (h *SamplesHandler) deleteBatch(w http.ResponseWriter, r *http.Request, batchID string) {
	err := h.store.Samples().DeleteBatch(batchID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Batch not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete batch")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
