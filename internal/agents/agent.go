package agents

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// defaultConsultTimeout bounds each individual persona call during a
// consultation so one hung expert cannot stall the barrier.
const defaultConsultTimeout = 90 * time.Second

// Agent runs persona-scoped conversations and parallel expert consultations.
type Agent struct {
	client         llm.Client
	consultTimeout time.Duration
}

// Option configures an Agent.
type Option func(*Agent)

// WithConsultTimeout overrides the per-persona timeout used during Consult.
func WithConsultTimeout(d time.Duration) Option {
	return func(a *Agent) { a.consultTimeout = d }
}

// New creates an Agent on top of an LLM client.
func New(client llm.Client, opts ...Option) *Agent {
	a := &Agent{
		client:         client,
		consultTimeout: defaultConsultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Chat sends a conversation to a single persona and returns its reply. The
// persona defaults to the coordinator when empty.
func (a *Agent) Chat(ctx context.Context, messages []types.ChatMessage, persona string, agentCtx *types.AgentContext) (string, error) {
	if persona == "" {
		persona = PersonaCoordinator
	}
	systemPrompt, err := buildSystemPrompt(persona, agentCtx)
	if err != nil {
		return "", err
	}
	return a.client.GenerateContent(ctx, systemPrompt, flattenConversation(messages), llm.TierAdvanced)
}

// Ask sends a single-turn query to a persona.
func (a *Agent) Ask(ctx context.Context, query, persona string, agentCtx *types.AgentContext) (string, error) {
	return a.Chat(ctx, []types.ChatMessage{{Role: "user", Content: query}}, persona, agentCtx)
}

// Consult sends the same query to every named persona in parallel and waits
// for all of them. Results come back in the order the personas were given.
// Individual failures are recorded as error-variant results rather than
// aborting the siblings; callers decide how many failures they can tolerate.
func (a *Agent) Consult(ctx context.Context, query string, personas []string, agentCtx *types.AgentContext) []types.ExpertConsultationResult {
	if len(personas) == 0 {
		personas = DefaultConsultPersonas
	}

	results := make([]types.ExpertConsultationResult, len(personas))
	g, gctx := errgroup.WithContext(ctx)

	for i, persona := range personas {
		g.Go(func() error {
			started := time.Now()
			content, err := a.consultOne(gctx, query, persona, agentCtx)
			result := types.ExpertConsultationResult{
				Persona:   persona,
				ElapsedMs: time.Since(started).Milliseconds(),
			}
			if err != nil {
				result.Err = err.Error()
			} else {
				result.Content = content
			}
			results[i] = result
			return nil
		})
	}

	// The group never carries an error; the Wait is the barrier.
	_ = g.Wait()
	return results
}

func (a *Agent) consultOne(ctx context.Context, query, persona string, agentCtx *types.AgentContext) (string, error) {
	systemPrompt, err := buildSystemPrompt(persona, agentCtx)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.consultTimeout)
	defer cancel()

	return a.client.GenerateContent(callCtx, systemPrompt, query, llm.TierAdvanced)
}

// flattenConversation renders a message history into a single prompt. Gemini's
// system instruction carries the persona, so the history travels as one block.
func flattenConversation(messages []types.ChatMessage) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		role := msg.Role
		if role == "" {
			role = "user"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}
