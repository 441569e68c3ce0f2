package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dexpi-labs/equipment-factory/internal/agents"
	"github.com/dexpi-labs/equipment-factory/internal/catalog"
	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/pipeline"
	"github.com/dexpi-labs/equipment-factory/internal/research"
	"github.com/dexpi-labs/equipment-factory/internal/scoring"
	"github.com/dexpi-labs/equipment-factory/internal/sectors"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// agentRequest is the envelope for POST /agent. Every mode shares it; the
// per-mode required fields are checked before any core component is invoked.
type agentRequest struct {
	Mode     string              `json:"mode" validate:"required,oneof=chat consult research review coverage create"`
	Messages []types.ChatMessage `json:"messages,omitempty"`
	Persona  string              `json:"persona,omitempty"`
	Personas []string            `json:"personas,omitempty"`
	Context  *types.AgentContext `json:"context,omitempty"`
	Params   *agentParams        `json:"params,omitempty"`
}

// agentParams carries the mode-specific parameters. The displayName,
// category, description, and componentClassURI fields are create-mode
// overrides on the generated card.
type agentParams struct {
	Sector            string                  `json:"sector,omitempty"`
	SubSector         string                  `json:"subSector,omitempty"`
	Facility          string                  `json:"facility,omitempty"`
	EquipmentClass    string                  `json:"equipmentClass,omitempty"`
	DisplayName       string                  `json:"displayName,omitempty"`
	Category          types.EquipmentCategory `json:"category,omitempty"`
	Description       string                  `json:"description,omitempty"`
	ComponentClassURI string                  `json:"componentClassURI,omitempty"`
	Card              *types.EquipmentCard    `json:"card,omitempty"`
}

// handleAgent dispatches an agent request to its mode handler. The mode set
// is closed; anything else fails request validation.
func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	switch req.Mode {
	case "chat":
		s.agentChat(w, r, &req)
	case "consult":
		s.agentConsult(w, r, &req)
	case "research":
		s.agentResearch(w, r, &req)
	case "review":
		s.agentReview(w, r, &req)
	case "coverage":
		s.agentCoverage(w, r, &req)
	case "create":
		s.agentCreate(w, r, &req)
	}
}

func (s *Server) agentChat(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if len(req.Messages) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "chat mode requires messages")
		return
	}

	reply, err := s.deps.Agent.Chat(r.Context(), req.Messages, req.Persona, req.Context)
	if err != nil {
		if errors.Is(err, agents.ErrUnknownPersona) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("chat failed: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) agentConsult(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if len(req.Messages) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "consult mode requires at least one message")
		return
	}

	query := req.Messages[len(req.Messages)-1].Content
	results := s.deps.Agent.Consult(r.Context(), query, req.Personas, req.Context)
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) agentResearch(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if req.Params == nil || req.Params.EquipmentClass == "" {
		s.errorResponse(w, http.StatusBadRequest, "research mode requires params.equipmentClass")
		return
	}

	profile, experts, err := s.deps.Researcher.Research(r.Context(), research.Request{
		Sector:         req.Params.Sector,
		SubSector:      req.Params.SubSector,
		Facility:       req.Params.Facility,
		EquipmentClass: req.Params.EquipmentClass,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("research failed: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"profile": profile, "experts": experts})
}

// reviewCritique is the quality reviewer's structured critique.
type reviewCritique struct {
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) agentReview(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if req.Params == nil || req.Params.Card == nil {
		s.errorResponse(w, http.StatusBadRequest, "review mode requires params.card")
		return
	}

	card := req.Params.Card
	result := types.ReviewResult{Score: scoring.Score(card)}

	cardJSON, err := json.Marshal(card)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "card is not serializable")
		return
	}

	prompt := fmt.Sprintf(`Review this equipment card for completeness and accuracy. Its rubric score is %d/100.
%s

Return JSON: {"issues": ["..."], "suggestions": ["..."]}`, result.Score, cardJSON)

	raw, err := s.deps.Client.GenerateJSON(r.Context(), prompt, llm.TierStandard)
	if err == nil {
		var critique reviewCritique
		if obj, ok := llm.ExtractJSONObject(raw); ok && json.Unmarshal([]byte(obj), &critique) == nil {
			result.Issues = critique.Issues
			result.Suggestions = critique.Suggestions
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) agentCoverage(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if req.Params == nil || req.Params.Facility == "" {
		s.errorResponse(w, http.StatusBadRequest, "coverage mode requires params.facility")
		return
	}

	facility, _, _, ok := sectors.FacilityByName(req.Params.Facility)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown facility type: %s", req.Params.Facility))
		return
	}

	existing, err := s.deps.Gateway.ExistingClasses(r.Context(), req.Params.Facility)
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, fmt.Sprintf("catalog unavailable: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, buildCoverageReport(req.Params.Facility, facility, existing))
}

func buildCoverageReport(facilityName string, facility sectors.Facility, existing []string) types.CoverageReport {
	expected := sectors.ExpectedClasses(facility)
	existingSet := make(map[string]bool, len(existing))
	for _, c := range existing {
		existingSet[c] = true
	}

	report := types.CoverageReport{
		Facility:      facilityName,
		ExpectedTypes: expected,
		ExistingTypes: existing,
	}

	covered := 0
	for _, class := range expected {
		if existingSet[class] {
			covered++
		} else {
			report.MissingTypes = append(report.MissingTypes, class)
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Generate %s cards for %s", class, facilityName))
		}
	}
	if len(expected) > 0 {
		report.CoveragePercent = 100 * covered / len(expected)
	}
	return report
}

// agentCreate runs a synchronous single-unit pipeline run for one equipment
// class, applying any caller-supplied card overrides, and returns the stored
// card along with its run record.
func (s *Server) agentCreate(w http.ResponseWriter, r *http.Request, req *agentRequest) {
	if req.Params == nil || req.Params.EquipmentClass == "" {
		s.errorResponse(w, http.StatusBadRequest, "create mode requires params.equipmentClass")
		return
	}

	card, run, err := s.deps.Orchestrator.GenerateOne(r.Context(), pipeline.RunRequest{
		Sector:         req.Params.Sector,
		SubSector:      req.Params.SubSector,
		Facility:       req.Params.Facility,
		EquipmentClass: req.Params.EquipmentClass,
		Overrides: &pipeline.CardOverrides{
			DisplayName:       req.Params.DisplayName,
			Category:          req.Params.Category,
			Description:       req.Params.Description,
			ComponentClassURI: req.Params.ComponentClassURI,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrInvalidRequest):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrUnavailable):
			s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if card == nil {
		status, msg := http.StatusUnprocessableEntity, "card failed validation"
		if run.Results.DuplicatesSkipped > 0 {
			status, msg = http.StatusConflict, "duplicate card skipped"
		}
		s.jsonResponse(w, status, map[string]any{"error": msg, "run": run})
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"card": card, "run": run})
}

// handleListPersonas lists the available expert personas.
func (s *Server) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"personas": agents.ListPersonas()})
}

// handleListSectors exposes the sector taxonomy.
func (s *Server) handleListSectors(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"sectors": sectors.All()})
}
