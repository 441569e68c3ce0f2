// Package pipeline orchestrates the five-stage card generation flow:
// research, generate, validate, catalog, store. Research runs once per run;
// every requested unit then moves through the remaining stages in order, and
// a unit abandoned at one stage never reaches the next.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dexpi-labs/equipment-factory/internal/catalog"
	"github.com/dexpi-labs/equipment-factory/internal/db"
	"github.com/dexpi-labs/equipment-factory/internal/fingerprint"
	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/research"
	"github.com/dexpi-labs/equipment-factory/internal/scoring"
	"github.com/dexpi-labs/equipment-factory/internal/tagging"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// ErrInvalidRequest is returned for unusable run parameters.
var ErrInvalidRequest = errors.New("invalid run request")

// MaxQuantity caps the units a single run may request.
const MaxQuantity = 25

// Orchestrator drives pipeline runs end to end.
type Orchestrator struct {
	researcher *research.Researcher
	client     llm.Client
	gateway    catalog.Gateway
	runs       db.RunStore
	verifier   scoring.URIVerifier
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRunStore enables run persistence at stage boundaries.
func WithRunStore(store db.RunStore) Option {
	return func(o *Orchestrator) { o.runs = store }
}

// WithURIVerifier enables the live RDL check during validation.
func WithURIVerifier(v scoring.URIVerifier) Option {
	return func(o *Orchestrator) { o.verifier = v }
}

// New creates an Orchestrator.
func New(researcher *research.Researcher, client llm.Client, gateway catalog.Gateway, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		researcher: researcher,
		client:     client,
		gateway:    gateway,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunRequest describes a bulk-generation request.
type RunRequest struct {
	Sector         string
	SubSector      string
	Facility       string
	EquipmentClass string
	Quantity       int
	// Overrides apply caller-supplied card fields on top of the generated
	// content. Only single-unit requests carry them.
	Overrides *CardOverrides
}

// CardOverrides are the optional caller-supplied card fields. Empty fields
// leave the generated value in place. Overrides are applied before the
// validate stage, so they count toward the card's score and fingerprint.
type CardOverrides struct {
	DisplayName       string
	Category          types.EquipmentCategory
	Description       string
	ComponentClassURI string
}

// CreateRun validates the request and creates a pending run. The run is
// persisted immediately when a store is configured.
func (o *Orchestrator) CreateRun(ctx context.Context, req RunRequest) (*types.PipelineRun, error) {
	if req.EquipmentClass == "" {
		return nil, fmt.Errorf("%w: equipment class is required", ErrInvalidRequest)
	}
	if req.Facility == "" {
		return nil, fmt.Errorf("%w: facility is required", ErrInvalidRequest)
	}
	if req.Quantity < 0 || req.Quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidRequest, MaxQuantity)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	run := &types.PipelineRun{
		ID:             uuid.NewString(),
		Sector:         req.Sector,
		SubSector:      req.SubSector,
		Facility:       req.Facility,
		EquipmentClass: req.EquipmentClass,
		Quantity:       req.Quantity,
		Status:         types.RunPending,
		Stages:         types.NewStages(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := o.persist(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Execute drives a run to a terminal status. Only catalog unavailability
// fails the run; every other problem abandons the affected unit and is
// reported through the run's logs and counters.
func (o *Orchestrator) Execute(ctx context.Context, run *types.PipelineRun) error {
	_, err := o.execute(ctx, run, nil)
	return err
}

// GenerateOne runs a single-unit run and returns the stored card. A nil card
// with a nil error means the unit was abandoned; the run explains why.
func (o *Orchestrator) GenerateOne(ctx context.Context, req RunRequest) (*types.EquipmentCard, *types.PipelineRun, error) {
	req.Quantity = 1
	run, err := o.CreateRun(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	card, err := o.execute(ctx, run, req.Overrides)
	return card, run, err
}

// execute is the shared run loop; it returns the last stored card, if any.
func (o *Orchestrator) execute(ctx context.Context, run *types.PipelineRun, overrides *CardOverrides) (*types.EquipmentCard, error) {
	run.Status = types.RunRunning
	if err := o.persist(ctx, run); err != nil {
		return nil, err
	}

	profile, ok := o.runResearch(ctx, run)
	if !ok {
		// All units are abandoned; the run itself still terminates normally.
		o.finish(ctx, run, types.RunCompleted)
		return nil, nil
	}

	scoreSum := 0
	var lastStored *types.EquipmentCard
	for unit := 1; unit <= run.Quantity; unit++ {
		card, score, err := o.processUnit(ctx, run, profile, unit, overrides)
		if err != nil {
			o.failRun(ctx, run, err)
			return nil, err
		}
		if card != nil {
			scoreSum += score
			lastStored = card
		}
		if err := o.persist(ctx, run); err != nil {
			return nil, err
		}
	}

	o.summarizeStages(run)
	if run.Results.Stored > 0 {
		run.Results.AverageScore = int(math.Round(float64(scoreSum) / float64(run.Results.Stored)))
	}
	o.finish(ctx, run, types.RunCompleted)
	return lastStored, nil
}

// runResearch executes the research stage once for the whole run. A failure
// marks research failed and abandons the downstream stages.
func (o *Orchestrator) runResearch(ctx context.Context, run *types.PipelineRun) (*types.ResearchProfile, bool) {
	o.startStage(run, types.StageResearch)
	run.AddLog("info", string(types.StageResearch), fmt.Sprintf("researching %s for %s", run.EquipmentClass, run.Facility))

	profile, experts, err := o.researcher.Research(ctx, research.Request{
		Sector:         run.Sector,
		SubSector:      run.SubSector,
		Facility:       run.Facility,
		EquipmentClass: run.EquipmentClass,
	})
	for _, res := range experts {
		if res.Failed() {
			run.AddLog("warn", string(types.StageResearch), fmt.Sprintf("expert %s failed: %s", res.Persona, res.Err))
		} else {
			run.AddLog("info", string(types.StageResearch), fmt.Sprintf("expert %s answered in %dms", res.Persona, res.ElapsedMs))
		}
	}
	if err != nil {
		o.failStage(run, types.StageResearch, err.Error())
		run.AddLog("error", string(types.StageResearch), fmt.Sprintf("research failed: %v", err))
		for _, name := range []types.StageName{types.StageGenerate, types.StageValidate, types.StageCatalog, types.StageStore} {
			o.failStage(run, name, "abandoned: research failed")
		}
		return nil, false
	}

	o.completeStage(run, types.StageResearch)
	run.AddLog("info", string(types.StageResearch), fmt.Sprintf("profile ready: %s (%s)", profile.EquipmentClass, profile.ComponentClassURI))
	return profile, true
}

// processUnit takes one unit through generate, validate, catalog, and store.
// It returns the stored card and its score, or nil when the unit was
// abandoned. A non-nil error is fatal to the run.
func (o *Orchestrator) processUnit(ctx context.Context, run *types.PipelineRun, profile *types.ResearchProfile, unit int, overrides *CardOverrides) (*types.EquipmentCard, int, error) {
	// Generate.
	o.startStage(run, types.StageGenerate)
	card := o.generateCard(ctx, run, profile, unit)
	applyOverrides(card, overrides)
	run.Results.Generated++
	run.AddLog("info", string(types.StageGenerate), fmt.Sprintf("unit %d: generated card %s", unit, card.Tag))

	// Validate.
	o.startStage(run, types.StageValidate)
	result := scoring.Evaluate(ctx, card, o.verifier)
	card.Metadata.ValidationScore = result.Score
	if result.RDLVerified {
		card.Metadata.Source = types.SourceRDLVerified
	}
	if result.Score < scoring.AcceptanceThreshold {
		run.AddLog("warn", string(types.StageValidate),
			fmt.Sprintf("unit %d: score %d below threshold %d, unit abandoned", unit, result.Score, scoring.AcceptanceThreshold))
		return nil, 0, nil
	}
	run.Results.Validated++
	run.AddLog("info", string(types.StageValidate), fmt.Sprintf("unit %d: score %d", unit, result.Score))

	// Catalog: tag allocation plus fingerprint dedup.
	o.startStage(run, types.StageCatalog)
	knownTags, err := o.gateway.KnownTags(ctx, run.Facility)
	if err != nil {
		return nil, 0, fmt.Errorf("known tags lookup: %w", err)
	}
	tag, err := tagging.Allocate(card.Tag, knownTags)
	if err != nil {
		if errors.Is(err, tagging.ErrTagSpaceExhausted) {
			run.Results.DuplicatesSkipped++
			run.AddLog("warn", string(types.StageCatalog), fmt.Sprintf("unit %d: tag space exhausted for %s, unit skipped", unit, card.Tag))
			return nil, 0, nil
		}
		return nil, 0, err
	}
	card.Tag = tag

	card.Metadata.ContentHash = fingerprint.HashCard(card)
	existing, err := o.gateway.FindByFingerprint(ctx, card.Metadata.ContentHash)
	if err != nil {
		return nil, 0, fmt.Errorf("fingerprint lookup: %w", err)
	}
	if existing != nil {
		run.Results.DuplicatesSkipped++
		run.AddLog("warn", string(types.StageCatalog),
			fmt.Sprintf("unit %d: fingerprint %s already cataloged as %s, unit skipped", unit, card.Metadata.ContentHash, existing.Tag))
		return nil, 0, nil
	}
	run.AddLog("info", string(types.StageCatalog), fmt.Sprintf("unit %d: allocated tag %s, fingerprint %s", unit, card.Tag, card.Metadata.ContentHash))

	// Store.
	o.startStage(run, types.StageStore)
	id, err := o.gateway.Insert(ctx, card)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog insert: %w", err)
	}
	run.Results.Stored++
	run.AddLog("info", string(types.StageStore), fmt.Sprintf("unit %d: stored card %s as %s", unit, card.Tag, id))
	return card, result.Score, nil
}

// summarizeStages closes the per-unit stages with a message describing what
// actually happened; a stage no unit ever reached says so.
func (o *Orchestrator) summarizeStages(run *types.PipelineRun) {
	r := run.Results
	summaries := map[types.StageName]string{
		types.StageGenerate: fmt.Sprintf("%d of %d units generated", r.Generated, run.Quantity),
		types.StageValidate: fmt.Sprintf("%d of %d units passed validation", r.Validated, r.Generated),
		types.StageCatalog:  fmt.Sprintf("%d units cataloged, %d duplicates skipped", r.Stored, r.DuplicatesSkipped),
		types.StageStore:    fmt.Sprintf("%d cards stored", r.Stored),
	}

	for _, name := range []types.StageName{types.StageGenerate, types.StageValidate, types.StageCatalog, types.StageStore} {
		stage := run.Stage(name)
		if stage == nil {
			continue
		}
		if stage.StartedAt == nil {
			stage.Message = "no units reached this stage"
		} else {
			stage.Message = summaries[name]
		}
		o.completeStage(run, name)
	}
}

// failRun marks the run failed after a fatal error.
func (o *Orchestrator) failRun(ctx context.Context, run *types.PipelineRun, cause error) {
	for i := range run.Stages {
		if run.Stages[i].Status == types.RunRunning {
			o.failStage(run, run.Stages[i].Name, cause.Error())
		}
	}
	run.AddLog("error", "", fmt.Sprintf("run failed: %v", cause))
	o.finish(ctx, run, types.RunFailed)
}

func (o *Orchestrator) finish(ctx context.Context, run *types.PipelineRun, status types.RunStatus) {
	now := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &now
	if err := o.persist(ctx, run); err != nil {
		run.AddLog("error", "", fmt.Sprintf("failed to persist run: %v", err))
	}
}

func (o *Orchestrator) persist(ctx context.Context, run *types.PipelineRun) error {
	if o.runs == nil {
		return nil
	}
	return o.runs.SaveRun(ctx, run)
}

func (o *Orchestrator) startStage(run *types.PipelineRun, name types.StageName) {
	stage := run.Stage(name)
	if stage == nil || stage.Status == types.RunCompleted || stage.Status == types.RunFailed {
		return
	}
	if stage.StartedAt == nil {
		now := time.Now().UTC()
		stage.StartedAt = &now
	}
	stage.Status = types.RunRunning
}

func (o *Orchestrator) completeStage(run *types.PipelineRun, name types.StageName) {
	stage := run.Stage(name)
	if stage == nil {
		return
	}
	now := time.Now().UTC()
	if stage.StartedAt == nil {
		stage.StartedAt = &now
	}
	stage.CompletedAt = &now
	stage.Status = types.RunCompleted
}

func (o *Orchestrator) failStage(run *types.PipelineRun, name types.StageName, message string) {
	stage := run.Stage(name)
	if stage == nil {
		return
	}
	now := time.Now().UTC()
	stage.CompletedAt = &now
	stage.Status = types.RunFailed
	stage.Message = message
}
