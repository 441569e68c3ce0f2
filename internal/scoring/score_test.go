package scoring

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

func floatPtr(v float64) *float64 { return &v }

// referenceCard returns a fully-populated card that should score near the top
// of the rubric.
func referenceCard() *types.EquipmentCard {
	return &types.EquipmentCard{
		Tag:               "P-101",
		ComponentClass:    "CentrifugalPump",
		ComponentClassURI: "http://data.posccaesar.org/rdl/RDS327239",
		DisplayName:       "Boiler Feed Water Pump",
		Description:       "Horizontal multistage centrifugal pump for boiler feed water service",
		Specifications: map[string]types.SpecValue{
			"type":     {Value: "multistage"},
			"capacity": {Value: 150.0, Unit: "m3/h"},
			"head":     {Value: 650.0, Unit: "m"},
			"power":    {Value: 355.0, Unit: "kW"},
			"speed":    {Value: 2980.0, Unit: "rpm"},
		},
		OperatingConditions: types.OperatingConditions{
			DesignPressure:    floatPtr(85),
			OperatingPressure: floatPtr(72),
		},
		Materials: types.Materials{
			Body:      "A216 WCB",
			Internals: "13Cr",
			Gaskets:   "Spiral wound 316/graphite",
		},
		Standards:     []string{"API 610", "ASME B73.1"},
		Manufacturers: []string{"Flowserve", "Sulzer", "KSB"},
		Nozzles: []types.Nozzle{
			{ID: "N1", Service: "suction", Size: "8\"", Rating: "300#", Facing: "RF"},
			{ID: "N2", Service: "discharge", Size: "6\"", Rating: "600#", Facing: "RF"},
		},
	}
}

func TestScore_ReferenceCardScoresHigh(t *testing.T) {
	assert.GreaterOrEqual(t, Score(referenceCard()), 80)
}

func TestScore_NeverExceeds100(t *testing.T) {
	assert.LessOrEqual(t, Score(referenceCard()), 100)
}

func TestScore_MonotonicDegradation(t *testing.T) {
	// Blanking any single rubric dimension must never increase the score.
	base := Score(referenceCard())

	mutations := map[string]func(*types.EquipmentCard){
		"tag":            func(c *types.EquipmentCard) { c.Tag = "" },
		"componentClass": func(c *types.EquipmentCard) { c.ComponentClass = "" },
		"description":    func(c *types.EquipmentCard) { c.Description = "" },
		"uri":            func(c *types.EquipmentCard) { c.ComponentClassURI = "" },
		"specifications": func(c *types.EquipmentCard) { c.Specifications = nil },
		"operating":      func(c *types.EquipmentCard) { c.OperatingConditions = types.OperatingConditions{} },
		"materials":      func(c *types.EquipmentCard) { c.Materials = types.Materials{} },
		"standards":      func(c *types.EquipmentCard) { c.Standards = nil },
		"manufacturers":  func(c *types.EquipmentCard) { c.Manufacturers = nil },
		"nozzles":        func(c *types.EquipmentCard) { c.Nozzles = nil },
	}

	for name, mutate := range mutations {
		card := referenceCard()
		mutate(card)
		assert.LessOrEqual(t, Score(card), base, "blanking %s increased the score", name)
	}
}

func TestScore_TagValidityGate(t *testing.T) {
	valid := referenceCard()
	invalid := referenceCard()
	invalid.Tag = "invalid-tag-format"

	assert.Less(t, Score(invalid), Score(valid))
}

func TestScore_TagFormats(t *testing.T) {
	for tag, ok := range map[string]bool{
		"P-101":      true,
		"P-101A":     true,
		"PSV-1001":   true,
		"XFMR-101":   true,
		"p-101":      false,
		"P101":       false,
		"P-10":       false,
		"P-10000":    false,
		"TOOLONG-101": false,
	} {
		card := referenceCard()
		card.Tag = tag
		res := Evaluate(context.Background(), card, nil)
		if ok {
			assert.Equal(t, res.MaxPossible, res.Earned, "tag %q should keep the card at full points", tag)
		} else {
			assert.Less(t, res.Earned, res.MaxPossible, "tag %q should lose points", tag)
		}
	}
}

func TestScore_PlausibilityCheck(t *testing.T) {
	implausible := referenceCard()
	implausible.OperatingConditions.DesignPressure = floatPtr(10)
	implausible.OperatingConditions.OperatingPressure = floatPtr(18)

	plausible := referenceCard()
	plausible.OperatingConditions.DesignPressure = floatPtr(25)
	plausible.OperatingConditions.OperatingPressure = floatPtr(18)

	assert.Less(t, Score(implausible), Score(plausible))
}

func TestScore_MinimalCardFloor(t *testing.T) {
	assert.Less(t, Score(&types.EquipmentCard{}), 40)
}

func TestScore_PartialCredit(t *testing.T) {
	card := referenceCard()
	card.Specifications = map[string]types.SpecValue{
		"type":     {Value: "multistage"},
		"capacity": {Value: 150.0, Unit: "m3/h"},
		"head":     {Value: 650.0, Unit: "m"},
	}
	threeSpecs := Score(card)

	card.Specifications = map[string]types.SpecValue{"type": {Value: "multistage"}}
	oneSpec := Score(card)

	assert.Less(t, oneSpec, threeSpecs)
	assert.Less(t, threeSpecs, Score(referenceCard()))
}

func TestScore_ShortDescriptionHalfCredit(t *testing.T) {
	long := referenceCard()
	short := referenceCard()
	short.Description = "BFW pump"
	empty := referenceCard()
	empty.Description = ""

	assert.Less(t, Score(short), Score(long))
	assert.Less(t, Score(empty), Score(short))
}

type fakeVerifier struct {
	label string
	err   error
	calls int
}

func (f *fakeVerifier) VerifyClassURI(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.label, f.err
}

func TestEvaluate_LiveVerifierConfirms(t *testing.T) {
	v := &fakeVerifier{label: "centrifugal pump"}
	res := Evaluate(context.Background(), referenceCard(), v)

	assert.True(t, res.RDLVerified)
	assert.Equal(t, 1, v.calls)
	assert.Equal(t, Score(referenceCard()), res.Score, "confirmed live check should match offline award")
}

func TestEvaluate_LiveVerifierRejects(t *testing.T) {
	offline := Evaluate(context.Background(), referenceCard(), nil)
	rejected := Evaluate(context.Background(), referenceCard(), &fakeVerifier{label: ""})

	assert.False(t, rejected.RDLVerified)
	assert.Less(t, rejected.Earned, offline.Earned)
	assert.Equal(t, offline.MaxPossible, rejected.MaxPossible)
}

func TestEvaluate_VerifierErrorIsNonFatal(t *testing.T) {
	v := &fakeVerifier{err: fmt.Errorf("endpoint unreachable")}
	res := Evaluate(context.Background(), referenceCard(), v)

	assert.False(t, res.RDLVerified)
	assert.NotEmpty(t, res.Notes)
}

func TestEvaluate_SkipsVerifierForBadURI(t *testing.T) {
	card := referenceCard()
	card.ComponentClassURI = "https://example.com/not-rdl"
	v := &fakeVerifier{label: "whatever"}

	Evaluate(context.Background(), card, v)
	assert.Zero(t, v.calls, "verifier should not be called for non-RDL URIs")
}

func TestEvaluate_MaxPossibleIsComputed(t *testing.T) {
	res := Evaluate(context.Background(), &types.EquipmentCard{}, nil)
	assert.Equal(t, 110, res.MaxPossible)
}
