// Package research produces structured equipment profiles by consulting
// expert personas in parallel and synthesising their reports through the
// coordinator into schema-validated JSON.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dexpi-labs/equipment-factory/internal/agents"
	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/sectors"
	"github.com/dexpi-labs/equipment-factory/internal/tagging"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// ErrMalformedResearch is returned when the coordinator synthesis cannot be
// parsed into a valid equipment profile.
var ErrMalformedResearch = errors.New("malformed research synthesis")

// Researcher runs the multi-persona research flow.
type Researcher struct {
	agent  *agents.Agent
	client llm.Client
}

// New creates a Researcher.
func New(agent *agents.Agent, client llm.Client) *Researcher {
	return &Researcher{agent: agent, client: client}
}

// Request names the equipment class to research and its facility context.
type Request struct {
	Sector         string
	SubSector      string
	Facility       string
	EquipmentClass string
}

// Research consults the research personas in parallel, synthesises their
// reports via the coordinator, and returns the validated profile along with
// the raw expert results. The consultation tolerates individual expert
// failures; only a fully failed panel aborts the research.
func (r *Researcher) Research(ctx context.Context, req Request) (*types.ResearchProfile, []types.ExpertConsultationResult, error) {
	if req.EquipmentClass == "" {
		return nil, nil, fmt.Errorf("%w: equipment class is required", ErrMalformedResearch)
	}

	agentCtx := &types.AgentContext{
		Sector:         req.Sector,
		SubSector:      req.SubSector,
		Facility:       req.Facility,
		EquipmentClass: req.EquipmentClass,
	}

	expertResults := r.agent.Consult(ctx, researchQuery(req), agents.ResearchPersonas, agentCtx)

	allFailed := true
	for _, res := range expertResults {
		if !res.Failed() {
			allFailed = false
			break
		}
	}
	if allFailed {
		return nil, expertResults, agents.ErrAllExpertsFailed
	}

	synthesis, err := r.client.GenerateJSON(ctx, synthesisPrompt(req, expertResults), llm.TierAdvanced)
	if err != nil {
		return nil, expertResults, fmt.Errorf("coordinator synthesis failed: %w", err)
	}

	profile, err := decodeProfile(synthesis)
	if err != nil {
		return nil, expertResults, err
	}

	applyTaxonomyDefaults(profile, req)
	return profile, expertResults, nil
}

// researchQuery builds the question sent to every research persona.
func researchQuery(req Request) string {
	return fmt.Sprintf(`Research the equipment class %q for use in a %s facility within the %s / %s sector.

Provide:
1. Detailed technical specifications (design pressure, temperature, capacity)
2. Materials of construction (body, internals, gaskets, bolting)
3. Major manufacturers (at least 3)
4. Applicable standards (ASME, API, IEEE, IEC, etc.)
5. DEXPI 2.0 component class URI from POSC Caesar RDL
6. ISA tag prefix
7. Typical operating conditions (design and operating pressure/temperature)
8. Nozzle / connection configurations

Return structured findings.`, req.EquipmentClass, req.Facility, req.Sector, req.SubSector)
}

// synthesisPrompt combines the expert reports into a single JSON request for
// the coordinator. Failed experts contribute "No data".
func synthesisPrompt(req Request, results []types.ExpertConsultationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are synthesising research from expert personas about %q equipment.\n", req.EquipmentClass)

	for _, res := range results {
		content := res.Content
		if res.Failed() || content == "" {
			content = "No data"
		}
		fmt.Fprintf(&b, "\n## %s Report:\n%s\n", res.Persona, content)
	}

	fmt.Fprintf(&b, `
Combine these into a single JSON object with these exact fields:
{
  "equipmentClass": %q,
  "componentClassURI": "POSC Caesar RDL URI, e.g. http://data.posccaesar.org/rdl/RDS327241",
  "tagPrefix": "ISA tag prefix, e.g. P",
  "specifications": { "specName": { "value": <number or string>, "unit": "unit" } },
  "materials": { "body": "", "internals": "", "gaskets": "", "bolting": "" },
  "operatingConditions": { "designPressure": 0, "operatingPressure": 0, "designTemperature": 0, "operatingTemperature": 0, "units": { "pressure": "barg", "temperature": "degC" } },
  "manufacturers": [ "at least 3" ],
  "standards": [ "applicable standards" ],
  "nozzles": [ { "id": "N1", "service": "", "size": "", "rating": "", "facing": "" } ]
}

Return ONLY valid JSON, no markdown.`, req.EquipmentClass)

	return b.String()
}

// decodeProfile validates the synthesis against the profile schema and
// decodes it.
func decodeProfile(raw string) (*types.ResearchProfile, error) {
	obj, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in synthesis", ErrMalformedResearch)
	}

	result, err := gojsonschema.Validate(profileSchemaLoader, gojsonschema.NewStringLoader(obj))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResearch, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedResearch, strings.Join(details, "; "))
	}

	var profile types.ResearchProfile
	if err := json.Unmarshal([]byte(obj), &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResearch, err)
	}
	return &profile, nil
}

// applyTaxonomyDefaults fills gaps the synthesis left using the curated
// taxonomy and the ISA prefix table.
func applyTaxonomyDefaults(profile *types.ResearchProfile, req Request) {
	if profile.ComponentClassURI == "" && req.Facility != "" {
		if facility, _, _, ok := sectors.FacilityByName(req.Facility); ok {
			if eq, ok := sectors.EquipmentTypeByClass(facility, req.EquipmentClass); ok {
				profile.ComponentClassURI = eq.ComponentClassURI
			}
		}
	}
	if profile.TagPrefix == "" {
		profile.TagPrefix = tagging.PrefixFor(profile.EquipmentClass)
	}
}
