package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/dexpi-labs/equipment-factory/internal/pipeline"
)

// createRunRequest is the body for POST /runs.
type createRunRequest struct {
	Sector         string `json:"sector,omitempty"`
	SubSector      string `json:"subSector,omitempty"`
	Facility       string `json:"facility" validate:"required"`
	EquipmentClass string `json:"equipmentClass" validate:"required"`
	Quantity       int    `json:"quantity,omitempty" validate:"gte=0,lte=25"`
}

// handleCreateRun accepts a pipeline run request and executes it in the
// background, returning the pending run record immediately.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	run, err := s.deps.Orchestrator.CreateRun(r.Context(), pipeline.RunRequest{
		Sector:         req.Sector,
		SubSector:      req.SubSector,
		Facility:       req.Facility,
		EquipmentClass: req.EquipmentClass,
		Quantity:       req.Quantity,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidRequest) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, run)

	// The request context dies once the response is written; the run keeps
	// going on its own context and reports progress through the run store.
	go func() {
		if err := s.deps.Orchestrator.Execute(context.Background(), run); err != nil {
			log.Printf("Pipeline run %s failed: %v", run.ID, err)
		}
	}()
}

// handleGetRun returns a single run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := s.deps.Runs.GetRun(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to load run: %v", err))
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("run not found: %s", id))
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleListRuns returns recent runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := s.deps.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}
