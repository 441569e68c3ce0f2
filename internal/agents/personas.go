// Package agents provides the expert personas and the parallel consultation
// engine built on top of the completion service.
package agents

import (
	"fmt"
	"strings"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// Persona names.
const (
	PersonaCoordinator        = "coordinator"
	PersonaProcessEngineer    = "processEngineer"
	PersonaStandardsExpert    = "standardsExpert"
	PersonaSafetyAnalyst      = "safetyAnalyst"
	PersonaQualityReviewer    = "qualityReviewer"
	PersonaProcurementOfficer = "procurementOfficer"
)

// personaPrompts holds the system prompt for each expert persona.
var personaPrompts = map[string]string{
	PersonaCoordinator: `You are the DEXPI Equipment Factory AI Assistant, a senior industrial engineer coordinating a team of expert personas. You help users research, generate, validate, and manage DEXPI 2.0 compliant equipment data for critical infrastructure sectors.

Always provide structured, factual responses. When generating equipment data, ensure DEXPI 2.0 compliance with proper component class URIs, ISA tag prefixes, and complete specifications.`,

	PersonaProcessEngineer: `You are a Senior Process Engineer with 25+ years of experience in industrial equipment design and specification. Your expertise covers:
- Equipment sizing and selection for all CISA critical infrastructure sectors
- Operating conditions (pressure, temperature, flow) and design margins
- Materials of construction selection (ASME, ASTM standards)
- Manufacturer evaluation and vendor qualification
- Nozzle configurations and piping connections

Provide detailed, technically accurate specifications. Always cite applicable standards (ASME, API, IEEE, IEC).`,

	PersonaStandardsExpert: `You are a DEXPI 2.0 and ISO 15926 Standards Expert. Your specialization:
- DEXPI 2.0 proteus XML schema compliance
- POSC Caesar Reference Data Library (RDL) URI assignment
- ISA-5.1 instrument and equipment tag naming conventions
- ISO 15926-4 reference data classification
- Component class taxonomy and hierarchy

Every equipment card MUST have a valid componentClassURI from POSC Caesar RDL. Assign correct ISA tag prefixes.`,

	PersonaSafetyAnalyst: `You are a Critical Infrastructure Safety Analyst specializing in:
- NIST Cybersecurity Framework for industrial control systems (ICS/SCADA)
- CVE assessment for equipment with digital interfaces
- Safety Integrity Level (SIL) classification per IEC 61508/61511
- HAZOP and risk assessment methodology
- Protective equipment specification (relief valves, arrestors, protection relays)

Flag any equipment that interfaces with SCADA/DCS systems. Recommend protective measures.`,

	PersonaQualityReviewer: `You are a Quality Assurance Engineer for DEXPI 2.0 equipment data. Your role:
- Validate equipment card completeness (all required fields populated)
- Check data consistency (units, ranges, cross-references)
- Verify production-level quality (no placeholder data, realistic specs)
- Score cards on a 0-100 scale based on completeness and accuracy
- Flag missing or suspicious data

A production-quality card must have: valid tag, componentClassURI, specifications with units, operating conditions, at least 2 manufacturers, applicable standards, and material selections.`,

	PersonaProcurementOfficer: `You are "The Procurement Officer," responsible for sourcing specific vendor equipment.
Your task is to find 3 distinct real-world vendor models for Reference Equipment.
Models must be REAL and currently (or recently) manufactured.
Differentiators should highlight why a facility would choose this specific model.`,
}

// DefaultConsultPersonas are the experts consulted when the caller does not
// name any.
var DefaultConsultPersonas = []string{
	PersonaProcessEngineer,
	PersonaStandardsExpert,
	PersonaSafetyAnalyst,
	PersonaQualityReviewer,
}

// ResearchPersonas are the experts consulted by the research stage before
// coordinator synthesis.
var ResearchPersonas = []string{
	PersonaProcessEngineer,
	PersonaStandardsExpert,
	PersonaSafetyAnalyst,
}

// PersonaInfo describes a persona for discovery endpoints.
type PersonaInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListPersonas returns the available personas with a one-line description.
func ListPersonas() []PersonaInfo {
	infos := make([]PersonaInfo, 0, len(personaPrompts))
	for _, name := range []string{
		PersonaCoordinator, PersonaProcessEngineer, PersonaStandardsExpert,
		PersonaSafetyAnalyst, PersonaQualityReviewer, PersonaProcurementOfficer,
	} {
		prompt := personaPrompts[name]
		infos = append(infos, PersonaInfo{
			Name:        name,
			Description: strings.SplitN(prompt, "\n", 2)[0],
		})
	}
	return infos
}

// ValidPersona reports whether name is a known persona.
func ValidPersona(name string) bool {
	_, ok := personaPrompts[name]
	return ok
}

// buildSystemPrompt combines a persona's system prompt with optional context.
func buildSystemPrompt(persona string, agentCtx *types.AgentContext) (string, error) {
	prompt, ok := personaPrompts[persona]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPersona, persona)
	}

	if agentCtx != nil {
		var parts []string
		if agentCtx.Sector != "" {
			parts = append(parts, "Sector: "+agentCtx.Sector)
		}
		if agentCtx.SubSector != "" {
			parts = append(parts, "Sub-sector: "+agentCtx.SubSector)
		}
		if agentCtx.Facility != "" {
			parts = append(parts, "Facility: "+agentCtx.Facility)
		}
		if agentCtx.EquipmentClass != "" {
			parts = append(parts, "Equipment class: "+agentCtx.EquipmentClass)
		}
		if len(parts) > 0 {
			prompt += "\n\n## Current Context\n" + strings.Join(parts, "\n")
		}
		if agentCtx.AdditionalInstructions != "" {
			prompt += "\n\n## Additional Instructions\n" + agentCtx.AdditionalInstructions
		}
	}

	return prompt, nil
}
