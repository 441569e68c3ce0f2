package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexpi-labs/equipment-factory/internal/agents"
	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/sectors"
)

const validSynthesis = `{
  "equipmentClass": "CentrifugalPump",
  "componentClassURI": "http://data.posccaesar.org/rdl/RDS327241",
  "tagPrefix": "P",
  "specifications": {
    "ratedFlow": {"value": 250, "unit": "m3/h"},
    "ratedHead": {"value": 120, "unit": "m"}
  },
  "materials": {"body": "A216 WCB", "internals": "316 SS"},
  "operatingConditions": {"designPressure": 25, "operatingPressure": 16, "units": {"pressure": "barg"}},
  "manufacturers": ["Flowserve", "Sulzer", "KSB"],
  "standards": ["API 610", "ASME B73.1"],
  "nozzles": [{"id": "N1", "service": "suction", "size": "DN200", "rating": "PN25", "facing": "RF"}]
}`

// fakeClient answers consults with canned expert text and synthesis with a
// configurable JSON payload.
type fakeClient struct {
	synthesis    string
	synthesisErr error
	consultErr   error
}

func (f *fakeClient) GenerateContent(context.Context, string, string, llm.ModelTier) (string, error) {
	if f.consultErr != nil {
		return "", f.consultErr
	}
	return "expert findings", nil
}

func (f *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	if f.synthesisErr != nil {
		return "", f.synthesisErr
	}
	return f.synthesis, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func newResearcher(client llm.Client) *Researcher {
	return New(agents.New(client), client)
}

func pumpRequest() Request {
	return Request{
		Sector:         "Energy",
		SubSector:      "Natural Gas",
		Facility:       "Gas Processing Plant",
		EquipmentClass: "CentrifugalPump",
	}
}

func TestResearch_HappyPath(t *testing.T) {
	r := newResearcher(&fakeClient{synthesis: validSynthesis})

	profile, experts, err := r.Research(context.Background(), pumpRequest())
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "CentrifugalPump", profile.EquipmentClass)
	assert.Equal(t, "http://data.posccaesar.org/rdl/RDS327241", profile.ComponentClassURI)
	assert.Len(t, profile.Specifications, 2)
	assert.Len(t, profile.Manufacturers, 3)
	require.Len(t, profile.Nozzles, 1)
	assert.Equal(t, "suction", profile.Nozzles[0].Service)

	require.Len(t, experts, len(agents.ResearchPersonas))
	for _, res := range experts {
		assert.False(t, res.Failed())
	}
}

func TestResearch_EmptyEquipmentClass(t *testing.T) {
	r := newResearcher(&fakeClient{synthesis: validSynthesis})

	_, _, err := r.Research(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResearch)
}

func TestResearch_AllExpertsFailed(t *testing.T) {
	r := newResearcher(&fakeClient{consultErr: errors.New("model overloaded")})

	_, experts, err := r.Research(context.Background(), pumpRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, agents.ErrAllExpertsFailed)

	require.Len(t, experts, len(agents.ResearchPersonas))
	for _, res := range experts {
		assert.True(t, res.Failed())
	}
}

func TestResearch_MalformedSynthesis(t *testing.T) {
	r := newResearcher(&fakeClient{synthesis: "I could not produce JSON, sorry."})

	_, _, err := r.Research(context.Background(), pumpRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResearch)
}

func TestResearch_SchemaViolation(t *testing.T) {
	// Missing manufacturers and standards.
	r := newResearcher(&fakeClient{synthesis: `{"equipmentClass": "Pump", "specifications": {}}`})

	_, _, err := r.Research(context.Background(), pumpRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResearch)
}

func TestResearch_SynthesisWrappedInProse(t *testing.T) {
	r := newResearcher(&fakeClient{synthesis: "Here is the profile:\n" + validSynthesis + "\nHope this helps."})

	profile, _, err := r.Research(context.Background(), pumpRequest())
	require.NoError(t, err)
	assert.Equal(t, "CentrifugalPump", profile.EquipmentClass)
}

func TestResearch_TaxonomyFillsMissingURI(t *testing.T) {
	synthesis := `{
	  "equipmentClass": "GasTurbine",
	  "specifications": {"power": {"value": 50, "unit": "MW"}},
	  "manufacturers": ["GE Vernova", "Siemens Energy", "Mitsubishi Power"],
	  "standards": ["ISO 3977"]
	}`
	r := newResearcher(&fakeClient{synthesis: synthesis})

	profile, _, err := r.Research(context.Background(), Request{
		Sector:         "Energy",
		SubSector:      "Electricity",
		Facility:       "Combined Cycle Gas Turbine Power Plant",
		EquipmentClass: "GasTurbine",
	})
	require.NoError(t, err)
	assert.Equal(t, sectors.GasTurbineURI, profile.ComponentClassURI)
	assert.NotEmpty(t, profile.TagPrefix)
}
