// Package types defines the shared data structures for the equipment factory pipeline.
package types

import "time"

// EquipmentCategory classifies equipment by its mechanical nature.
type EquipmentCategory string

// Equipment categories
const (
	CategoryRotating        EquipmentCategory = "rotating"
	CategoryStatic          EquipmentCategory = "static"
	CategoryHeatTransfer    EquipmentCategory = "heat-transfer"
	CategoryInstrumentation EquipmentCategory = "instrumentation"
	CategoryElectrical      EquipmentCategory = "electrical"
	CategoryPiping          EquipmentCategory = "piping"
)

// Card sources
const (
	SourceManual      = "manual"
	SourceAIGenerated = "ai-generated"
	SourceImported    = "imported"
	SourceVendor      = "vendor"
	// SourceRDLVerified marks cards whose componentClassURI was confirmed
	// against the live POSC Caesar RDL endpoint.
	SourceRDLVerified = "rdl-verified"
)

// SpecValue is a single named specification with its unit and optional provenance.
type SpecValue struct {
	Value  any    `json:"value"`
	Unit   string `json:"unit,omitempty"`
	Source string `json:"source,omitempty"`
}

// OperatingConditions holds the design and operating envelope of a piece of equipment.
// All fields are optional; plausibility (design >= operating) is checked by the
// scorer, never enforced here.
type OperatingConditions struct {
	DesignPressure       *float64          `json:"designPressure,omitempty"`
	OperatingPressure    *float64          `json:"operatingPressure,omitempty"`
	DesignTemperature    *float64          `json:"designTemperature,omitempty"`
	OperatingTemperature *float64          `json:"operatingTemperature,omitempty"`
	FlowRate             *float64          `json:"flowRate,omitempty"`
	Units                map[string]string `json:"units,omitempty"`
}

// Materials lists materials of construction.
type Materials struct {
	Body      string `json:"body,omitempty"`
	Internals string `json:"internals,omitempty"`
	Gaskets   string `json:"gaskets,omitempty"`
	Bolting   string `json:"bolting,omitempty"`
}

// NonEmptyCount returns how many material fields are populated.
func (m Materials) NonEmptyCount() int {
	count := 0
	for _, v := range []string{m.Body, m.Internals, m.Gaskets, m.Bolting} {
		if v != "" {
			count++
		}
	}
	return count
}

// Nozzle describes a single nozzle or connection on a piece of equipment.
type Nozzle struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Size    string `json:"size"`
	Rating  string `json:"rating"`
	Facing  string `json:"facing"`
}

// CardMetadata holds bookkeeping fields for an equipment card.
// ContentHash and ValidationScore are derived: they are recomputed by the
// fingerprint and scoring packages and never hand-set by upstream stages.
type CardMetadata struct {
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	CreatedBy       string    `json:"createdBy"`
	ContentHash     string    `json:"contentHash"`
	ValidationScore int       `json:"validationScore"`
	Source          string    `json:"source"`
}

// EquipmentCard is the canonical unit of work and output of the pipeline.
type EquipmentCard struct {
	ID                string               `json:"id"`
	Tag               string               `json:"tag"`
	ComponentClass    string               `json:"componentClass"`
	ComponentClassURI string               `json:"componentClassURI"`
	DisplayName       string               `json:"displayName"`
	Category          EquipmentCategory    `json:"category"`
	Description       string               `json:"description"`
	Sector            string               `json:"sector"`
	SubSector         string               `json:"subSector"`
	Facility          string               `json:"facility"`
	Specifications    map[string]SpecValue `json:"specifications"`
	OperatingConditions OperatingConditions `json:"operatingConditions"`
	Materials         Materials            `json:"materials"`
	Standards         []string             `json:"standards"`
	Manufacturers     []string             `json:"manufacturers"`
	Nozzles           []Nozzle             `json:"nozzles"`
	Metadata          CardMetadata         `json:"metadata"`
}
