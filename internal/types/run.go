package types

import "time"

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

// Run statuses
const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// StageName identifies one of the five fixed pipeline stages.
type StageName string

// Pipeline stages, in execution order.
const (
	StageResearch StageName = "research"
	StageGenerate StageName = "generate"
	StageValidate StageName = "validate"
	StageCatalog  StageName = "catalog"
	StageStore    StageName = "store"
)

// StageOrder is the fixed stage sequence for every unit of work.
var StageOrder = []StageName{StageResearch, StageGenerate, StageValidate, StageCatalog, StageStore}

// StageStatus tracks one stage of a run.
type StageStatus struct {
	Name        StageName  `json:"name"`
	Status      RunStatus  `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// RunResults holds per-run aggregate counters. Counters are monotonically
// non-decreasing within a run and incremented exactly once per unit per
// successful stage boundary.
type RunResults struct {
	Generated         int `json:"generated"`
	Validated         int `json:"validated"`
	Stored            int `json:"stored"`
	DuplicatesSkipped int `json:"duplicatesSkipped"`
	AverageScore      int `json:"averageScore"`
}

// LogEntry is one append-only log line on a run. The logs slice and the
// results counters are the only user-visible error surface of a run.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
}

// PipelineRun is one bulk-generation execution. Runs are created pending,
// mutated in place as units progress, and are never deleted.
type PipelineRun struct {
	ID             string        `json:"id"`
	Sector         string        `json:"sector"`
	SubSector      string        `json:"subSector"`
	Facility       string        `json:"facility"`
	EquipmentClass string        `json:"equipmentClass"`
	Quantity       int           `json:"quantity"`
	Status         RunStatus     `json:"status"`
	Stages         []StageStatus `json:"stages"`
	CreatedAt      time.Time     `json:"createdAt"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
	Results        RunResults    `json:"results"`
	Logs           []LogEntry    `json:"logs"`
}

// NewStages returns the five pipeline stages, all pending.
func NewStages() []StageStatus {
	stages := make([]StageStatus, 0, len(StageOrder))
	for _, name := range StageOrder {
		stages = append(stages, StageStatus{Name: name, Status: RunPending})
	}
	return stages
}

// Stage returns a pointer to the named stage record, or nil if absent.
func (r *PipelineRun) Stage(name StageName) *StageStatus {
	for i := range r.Stages {
		if r.Stages[i].Name == name {
			return &r.Stages[i]
		}
	}
	return nil
}

// AddLog appends an entry to the run's log.
func (r *PipelineRun) AddLog(level, stage, message string) {
	r.Logs = append(r.Logs, LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Stage:     stage,
		Message:   message,
	})
}
