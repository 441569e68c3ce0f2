package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// fakeClient returns canned responses keyed by a substring of the system
// prompt, and can fail selected personas.
type fakeClient struct {
	mu        sync.Mutex
	responses map[string]string
	failFor   map[string]error
	calls     int
}

func (f *fakeClient) GenerateContent(_ context.Context, systemPrompt, _ string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	for key, err := range f.failFor {
		if strings.Contains(systemPrompt, key) {
			return "", err
		}
	}
	for key, resp := range f.responses {
		if strings.Contains(systemPrompt, key) {
			return resp, nil
		}
	}
	return "generic reply", nil
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestChat_DefaultsToCoordinator(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"DEXPI Equipment Factory AI Assistant": "coordinator speaking",
	}}
	agent := New(client)

	reply, err := agent.Chat(context.Background(), []types.ChatMessage{
		{Role: "user", Content: "hello"},
	}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "coordinator speaking", reply)
}

func TestChat_UnknownPersona(t *testing.T) {
	agent := New(&fakeClient{})

	_, err := agent.Chat(context.Background(), nil, "plumber", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestChat_ContextInjectedIntoSystemPrompt(t *testing.T) {
	var captured string
	client := &promptCapturingClient{captured: &captured}
	agent := New(client)

	_, err := agent.Chat(context.Background(), []types.ChatMessage{
		{Role: "user", Content: "what pumps do we need?"},
	}, PersonaProcessEngineer, &types.AgentContext{
		Sector:         "Energy",
		Facility:       "Natural Gas Processing Plant",
		EquipmentClass: "CentrifugalPump",
	})
	require.NoError(t, err)

	assert.Contains(t, captured, "Senior Process Engineer")
	assert.Contains(t, captured, "Sector: Energy")
	assert.Contains(t, captured, "Facility: Natural Gas Processing Plant")
	assert.Contains(t, captured, "Equipment class: CentrifugalPump")
}

func TestConsult_PreservesInputOrder(t *testing.T) {
	client := &fakeClient{responses: map[string]string{
		"Senior Process Engineer": "process view",
		"Standards Expert":        "standards view",
		"Safety Analyst":          "safety view",
	}}
	agent := New(client)

	personas := []string{PersonaSafetyAnalyst, PersonaProcessEngineer, PersonaStandardsExpert}
	results := agent.Consult(context.Background(), "evaluate a compressor", personas, nil)

	require.Len(t, results, 3)
	assert.Equal(t, PersonaSafetyAnalyst, results[0].Persona)
	assert.Equal(t, PersonaProcessEngineer, results[1].Persona)
	assert.Equal(t, PersonaStandardsExpert, results[2].Persona)
	assert.Equal(t, "safety view", results[0].Content)
	assert.Equal(t, "process view", results[1].Content)
	assert.Equal(t, "standards view", results[2].Content)
}

func TestConsult_PartialFailureDoesNotAbortSiblings(t *testing.T) {
	client := &fakeClient{
		responses: map[string]string{
			"Senior Process Engineer": "process view",
			"Quality Assurance":       "quality view",
		},
		failFor: map[string]error{
			"Standards Expert": errors.New("model overloaded"),
			"Safety Analyst":   errors.New("deadline exceeded"),
		},
	}
	agent := New(client)

	results := agent.Consult(context.Background(), "evaluate a compressor", DefaultConsultPersonas, nil)

	require.Len(t, results, 4)
	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.Contains(t, results[1].Err, "model overloaded")
	assert.True(t, results[2].Failed())
	assert.False(t, results[3].Failed())
	assert.Equal(t, "quality view", results[3].Content)

	// The barrier waited for everybody.
	assert.Equal(t, 4, client.calls)
}

func TestConsult_FivePersonasThirdFails(t *testing.T) {
	client := &fakeClient{
		responses: map[string]string{
			"Senior Process Engineer": "process view",
			"Standards Expert":        "standards view",
			"Quality Assurance":       "quality view",
			"Procurement Officer":     "procurement view",
		},
		failFor: map[string]error{
			"Safety Analyst": errors.New("model overloaded"),
		},
	}
	agent := New(client)

	personas := []string{
		PersonaProcessEngineer, PersonaStandardsExpert, PersonaSafetyAnalyst,
		PersonaQualityReviewer, PersonaProcurementOfficer,
	}
	results := agent.Consult(context.Background(), "evaluate a compressor", personas, nil)

	// Five results in input order; only the third is the error variant.
	require.Len(t, results, 5)
	for i, want := range personas {
		assert.Equal(t, want, results[i].Persona)
	}
	assert.True(t, results[2].Failed())
	assert.Contains(t, results[2].Err, "model overloaded")
	for _, i := range []int{0, 1, 3, 4} {
		assert.False(t, results[i].Failed(), "persona %s", results[i].Persona)
	}
	assert.Equal(t, "procurement view", results[4].Content)

	// The barrier waited for everybody.
	assert.Equal(t, 5, client.calls)
}

func TestConsult_EmptyPersonasUsesDefaults(t *testing.T) {
	client := &fakeClient{}
	agent := New(client)

	results := agent.Consult(context.Background(), "anything", nil, nil)

	require.Len(t, results, len(DefaultConsultPersonas))
	for i, want := range DefaultConsultPersonas {
		assert.Equal(t, want, results[i].Persona)
	}
}

func TestConsult_UnknownPersonaBecomesErrorVariant(t *testing.T) {
	agent := New(&fakeClient{})

	results := agent.Consult(context.Background(), "anything", []string{PersonaProcessEngineer, "plumber"}, nil)

	require.Len(t, results, 2)
	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.Contains(t, results[1].Err, "unknown persona")
}

func TestListPersonas(t *testing.T) {
	infos := ListPersonas()
	require.Len(t, infos, 6)
	assert.Equal(t, PersonaCoordinator, infos[0].Name)
	assert.NotEmpty(t, infos[0].Description)
}

func TestValidPersona(t *testing.T) {
	assert.True(t, ValidPersona(PersonaQualityReviewer))
	assert.False(t, ValidPersona(""))
	assert.False(t, ValidPersona("plumber"))
}

// promptCapturingClient records the system prompt of the last call.
type promptCapturingClient struct {
	captured *string
}

func (c *promptCapturingClient) GenerateContent(_ context.Context, systemPrompt, _ string, _ llm.ModelTier) (string, error) {
	*c.captured = systemPrompt
	return "ok", nil
}

func (c *promptCapturingClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "{}", nil
}

func (c *promptCapturingClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (c *promptCapturingClient) Close() error                  { return nil }
