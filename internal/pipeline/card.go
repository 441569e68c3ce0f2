package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/sectors"
	"github.com/dexpi-labs/equipment-factory/internal/tagging"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// cardVariation is the per-unit output of the generation model: a vendor
// flavored take on the research baseline. Real catalogs carry several models
// of the same class, so each unit is asked for a distinct variant; when two
// variants come back content-identical the fingerprint dedup catches it.
type cardVariation struct {
	DisplayName    string                     `json:"displayName"`
	Description    string                     `json:"description"`
	Manufacturer   string                     `json:"manufacturer"`
	Specifications map[string]types.SpecValue `json:"specifications"`
}

// generateCard assembles one equipment card from the research profile plus a
// per-unit vendor variation. The tag is a base candidate; the catalog stage
// resolves collisions through the allocator. Generation never fails a unit: a
// missed variation call falls back to the research baseline.
func (o *Orchestrator) generateCard(ctx context.Context, run *types.PipelineRun, profile *types.ResearchProfile, unit int) *types.EquipmentCard {
	prefix := profile.TagPrefix
	if prefix == "" {
		prefix = tagging.PrefixFor(profile.EquipmentClass)
	}

	now := time.Now().UTC()
	card := &types.EquipmentCard{
		ID:                  uuid.NewString(),
		Tag:                 fmt.Sprintf("%s-%d", prefix, 100+unit),
		ComponentClass:      profile.EquipmentClass,
		ComponentClassURI:   profile.ComponentClassURI,
		DisplayName:         fmt.Sprintf("%s %d", profile.EquipmentClass, unit),
		Description:         fmt.Sprintf("%s for %s service at %s.", profile.EquipmentClass, run.SubSector, run.Facility),
		Sector:              run.Sector,
		SubSector:           run.SubSector,
		Facility:            run.Facility,
		Specifications:      copySpecs(profile.Specifications),
		OperatingConditions: profile.OperatingConditions,
		Materials:           profile.Materials,
		Standards:           append([]string(nil), profile.Standards...),
		Manufacturers:       append([]string(nil), profile.Manufacturers...),
		Nozzles:             append([]types.Nozzle(nil), profile.Nozzles...),
		Metadata: types.CardMetadata{
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: "pipeline",
			Source:    types.SourceAIGenerated,
		},
	}

	if facility, _, _, ok := sectors.FacilityByName(run.Facility); ok {
		if eq, ok := sectors.EquipmentTypeByClass(facility, profile.EquipmentClass); ok {
			card.Category = eq.Category
		}
	}

	if variation, err := o.generateVariation(ctx, run, profile, unit); err != nil {
		run.AddLog("warn", string(types.StageGenerate), fmt.Sprintf("unit %d: variation failed, using research baseline: %v", unit, err))
	} else {
		applyVariation(card, variation)
	}

	return card
}

// generateVariation asks the model for a distinct vendor model of the
// researched class.
func (o *Orchestrator) generateVariation(ctx context.Context, run *types.PipelineRun, profile *types.ResearchProfile, unit int) (*cardVariation, error) {
	baseline, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are generating unit %d of %d for a %s at a %s (%s sector).
Research baseline:
%s

Pick one real manufacturer from the baseline (a different one than for other units where possible)
and produce that vendor's model of this equipment as JSON:
{
  "displayName": "vendor model name",
  "description": "two-sentence technical description",
  "manufacturer": "vendor",
  "specifications": { "specName": { "value": <number or string>, "unit": "unit" } }
}
Keep specification keys from the baseline, adjusting values to the chosen model. Return ONLY JSON.`,
		unit, run.Quantity, profile.EquipmentClass, run.Facility, run.Sector, baseline)

	raw, err := o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	obj, ok := llm.ExtractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in variation response")
	}
	var variation cardVariation
	if err := json.Unmarshal([]byte(obj), &variation); err != nil {
		return nil, fmt.Errorf("failed to decode variation: %w", err)
	}
	return &variation, nil
}

// applyOverrides overlays caller-supplied card fields. It runs after the
// vendor variation, so explicit overrides always win.
func applyOverrides(card *types.EquipmentCard, ov *CardOverrides) {
	if ov == nil {
		return
	}
	if ov.DisplayName != "" {
		card.DisplayName = ov.DisplayName
	}
	if ov.Category != "" {
		card.Category = ov.Category
	}
	if ov.Description != "" {
		card.Description = ov.Description
	}
	if ov.ComponentClassURI != "" {
		card.ComponentClassURI = ov.ComponentClassURI
	}
}

// applyVariation overlays the vendor variation onto the baseline card.
func applyVariation(card *types.EquipmentCard, v *cardVariation) {
	if v.DisplayName != "" {
		card.DisplayName = v.DisplayName
	}
	if v.Description != "" {
		card.Description = v.Description
	}
	if v.Manufacturer != "" {
		card.Manufacturers = prependUnique(card.Manufacturers, v.Manufacturer)
	}
	for k, spec := range v.Specifications {
		card.Specifications[k] = spec
	}
}

func prependUnique(list []string, s string) []string {
	out := []string{s}
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}

func copySpecs(specs map[string]types.SpecValue) map[string]types.SpecValue {
	copied := make(map[string]types.SpecValue, len(specs))
	for k, v := range specs {
		copied[k] = v
	}
	return copied
}
