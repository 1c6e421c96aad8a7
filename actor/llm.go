package actor

import (
	"context"
	"fmt"
	"math/rand"

	"google.golang.org/genai"
)

// LLMActor is an automated actor backed by the Gemini API. It keeps
// the full conversation history so every decision is made with the
// context the actor has accumulated through notifications and prior
// turns. Incidental model output is never printed; the caller decides
// what becomes public.
type LLMActor struct {
	name    string
	client  *genai.Client
	model   string
	pool    []string
	history []*genai.Content
	rng     *rand.Rand
}

// NewLLMActor creates an automated actor. pool lists the alternate
// model ids available for rebinding on provider failure; it may
// include the primary model.
func NewLLMActor(name string, client *genai.Client, model string, pool []string, systemPrompt string, rng *rand.Rand) *LLMActor {
	a := &LLMActor{
		name:   name,
		client: client,
		model:  model,
		pool:   pool,
		rng:    rng,
	}
	if systemPrompt != "" {
		a.history = append(a.history, genai.NewContentFromText(systemPrompt, genai.RoleUser))
	}
	return a
}

func (a *LLMActor) Name() string { return a.name }

// Model returns the current decision-service binding.
func (a *LLMActor) Model() string { return a.model }

// Decide sends the prompt with the accumulated history and records
// both sides of the exchange.
func (a *LLMActor) Decide(ctx context.Context, prompt string) (string, error) {
	a.history = append(a.history, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := a.client.Models.GenerateContent(ctx, a.model, a.history, nil)
	if err != nil {
		// Keep the history symmetric: drop the unanswered prompt so a
		// retry does not stack duplicates.
		a.history = a.history[:len(a.history)-1]
		return "", fmt.Errorf("decide %s: %w", a.name, err)
	}

	reply := resp.Text()
	a.history = append(a.history, genai.NewContentFromText(reply, genai.RoleModel))
	return reply, nil
}

// Notify folds a broadcast into the actor's history so it informs
// later decisions. Automated actors have no console presence.
func (a *LLMActor) Notify(text string, private bool) {
	if private {
		text = "[private] " + text
	}
	a.history = append(a.history, genai.NewContentFromText(text, genai.RoleUser))
}

// Rebind rotates to a different configured model. Returns false when
// no alternate exists.
func (a *LLMActor) Rebind() bool {
	var alternates []string
	for _, m := range a.pool {
		if m != a.model {
			alternates = append(alternates, m)
		}
	}
	if len(alternates) == 0 {
		return false
	}
	a.model = alternates[a.rng.Intn(len(alternates))]
	return true
}
