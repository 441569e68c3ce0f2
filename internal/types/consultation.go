package types

// AgentContext carries optional domain context threaded through agent calls.
type AgentContext struct {
	Sector                 string `json:"sector,omitempty"`
	SubSector              string `json:"subSector,omitempty"`
	Facility               string `json:"facility,omitempty"`
	EquipmentClass         string `json:"equipmentClass,omitempty"`
	AdditionalInstructions string `json:"additionalInstructions,omitempty"`
}

// ChatMessage is a single turn of a conversation with a persona.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExpertConsultationResult is one persona's answer to one query. A failed
// persona call produces the error variant (Err non-empty, Content empty) and
// never aborts sibling calls.
type ExpertConsultationResult struct {
	Persona   string `json:"persona"`
	Content   string `json:"content,omitempty"`
	Err       string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Failed reports whether this result is the error variant.
func (r ExpertConsultationResult) Failed() bool {
	return r.Err != ""
}

// ResearchProfile is the typed output of the research stage: one structured
// equipment profile for a (sector, subSector, facility, equipmentClass)
// context, synthesised from expert consultation.
type ResearchProfile struct {
	EquipmentClass      string               `json:"equipmentClass"`
	ComponentClassURI   string               `json:"componentClassURI"`
	TagPrefix           string               `json:"tagPrefix,omitempty"`
	Specifications      map[string]SpecValue `json:"specifications"`
	Materials           Materials            `json:"materials"`
	OperatingConditions OperatingConditions  `json:"operatingConditions"`
	Manufacturers       []string             `json:"manufacturers"`
	Standards           []string             `json:"standards"`
	Nozzles             []Nozzle             `json:"nozzles"`
}

// ReviewResult is the quality reviewer's assessment of a card: the
// deterministic rubric score plus LLM critique.
type ReviewResult struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// CoverageReport compares the catalog contents of a facility against the
// equipment classes its taxonomy entry expects.
type CoverageReport struct {
	Facility        string   `json:"facility"`
	ExpectedTypes   []string `json:"expectedTypes"`
	ExistingTypes   []string `json:"existingTypes"`
	MissingTypes    []string `json:"missingTypes"`
	CoveragePercent int      `json:"coveragePercent"`
	Recommendations []string `json:"recommendations,omitempty"`
}
