// Package advisor turns computed portfolio figures into plain-language
// recommendations using a Gemini model. It is strictly optional: the
// refresh orchestrator treats a failed initialization or generation as a
// skipped step, never as a failed refresh.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nboul/networth"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// Advisor holds the Gemini chat session used to phrase recommendations.
type Advisor struct {
	Model string

	mu   sync.Mutex
	chat *genai.Chat
}

// New returns an advisor for the given model name; empty selects DefaultModel.
func New(model string) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &Advisor{Model: model}
}

const systemPrompt = `You are a cautious personal-finance assistant. You are
given portfolio performance figures and a passive income projection. Reply
with at most three short, concrete observations. Never invent numbers, never
give tax or legal advice, and flag any figure that looks alarming.`

// Init creates the Gemini client and chat session. Credentials come from
// the environment; a machine without them simply runs without an advisor.
func (a *Advisor) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.chat != nil {
		return nil
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("advisor client init failed: %w", err)
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, a.Model, config, nil)
	if err != nil {
		return fmt.Errorf("advisor chat init failed: %w", err)
	}
	a.chat = chat
	return nil
}

// Recommend asks the model for observations on the given figures.
func (a *Advisor) Recommend(ctx context.Context, metrics networth.PerformanceMetrics, income networth.IncomeProjection) (string, error) {
	a.mu.Lock()
	chat := a.chat
	a.mu.Unlock()
	if chat == nil {
		return "", fmt.Errorf("advisor is not initialized")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio start value %.2f, end value %.2f, peak %.2f, trough %.2f.\n",
		metrics.StartValue, metrics.EndValue, metrics.PeakValue, metrics.LowestValue)
	fmt.Fprintf(&b, "Total return %.2f (%s).\n", metrics.TotalReturn, metrics.TotalReturnPercentage)
	fmt.Fprintf(&b, "Projected passive income: %.2f monthly, %.2f annually.\n", income.Monthly, income.Annual)

	resp, err := chat.Send(ctx, &genai.Part{Text: b.String()})
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned no response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
