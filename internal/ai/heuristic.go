package ai

import (
	"context"
	"fmt"
	"strings"
)

// Keyword cues, scanned in order. No low cues: absence of any signal
// defaults to low.
var highCues = []string{
	"critical", "urgent", "asap", "production", "blocker",
	"down", "outage", "emergency", "deadline", "broken",
}

var mediumCues = []string{
	"important", "soon", "needed", "should", "review",
}

// HeuristicAdvisor assigns a priority by scanning the task text for
// urgency keywords. Deterministic, no external calls.
type HeuristicAdvisor struct{}

func (h *HeuristicAdvisor) Assess(ctx context.Context, title, description string) (Assessment, error) {
	if err := validateInput(title); err != nil {
		return Assessment{}, err
	}

	content := strings.ToLower(strings.TrimSpace(title))
	if d := strings.TrimSpace(description); d != "" {
		content += " " + strings.ToLower(d)
	}

	if matched := matchCues(content, highCues); len(matched) > 0 {
		return Assessment{
			Priority: PriorityHigh,
			Reason:   fmt.Sprintf("High priority: task mentions %s", quoteCues(matched)),
			Strategy: StrategyHeuristic,
		}, nil
	}

	if matched := matchCues(content, mediumCues); len(matched) > 0 {
		return Assessment{
			Priority: PriorityMedium,
			Reason:   fmt.Sprintf("Medium priority: task mentions %s", quoteCues(matched)),
			Strategy: StrategyHeuristic,
		}, nil
	}

	return Assessment{
		Priority: PriorityLow,
		Reason:   "Low priority: no strong urgency signal detected in the task text",
		Strategy: StrategyHeuristic,
	}, nil
}

func matchCues(content string, cues []string) []string {
	var matched []string
	for _, cue := range cues {
		if strings.Contains(content, cue) {
			matched = append(matched, cue)
		}
	}
	return matched
}

// quoteCues formats up to three matched cues for the reason text.
func quoteCues(cues []string) string {
	if len(cues) > 3 {
		cues = cues[:3]
	}
	quoted := make([]string, len(cues))
	for i, c := range cues {
		quoted[i] = "'" + c + "'"
	}
	return strings.Join(quoted, ", ")
}
