package ai

import (
	"context"
	"errors"
	"strings"
)

// Priority labels every advisor strategy is allowed to return.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Strategy names, recorded with events for observability.
const (
	StrategyHeuristic = "heuristic"
	StrategyOpenAI    = "openai"
)

var ErrEmptyTitle = errors.New("title is required")

// Assessment is the result of one priority analysis. Produced fresh on
// every call; the advisor keeps no state between calls.
type Assessment struct {
	Priority string `json:"priority"`
	Reason   string `json:"priority_reason"`

	// Strategy names the implementation that produced the result.
	// Not part of API responses.
	Strategy string `json:"-"`
}

// Advisor suggests a priority level and a justification for a task
// based on its title and description.
type Advisor interface {
	Assess(ctx context.Context, title, description string) (Assessment, error)
}

// New selects the strategy by configuration: with an OpenAI key the
// remote advisor runs first and the heuristic answers whenever it
// fails, without a key the heuristic runs alone.
func New(apiKey, model string) Advisor {
	if apiKey == "" {
		return &HeuristicAdvisor{}
	}
	return &FallbackAdvisor{
		Primary:  NewOpenAIAdvisor(apiKey, model),
		Fallback: &HeuristicAdvisor{},
	}
}

func validateInput(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
