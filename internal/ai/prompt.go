package ai

import "strings"

// systemPrompt constrains the model to a reply parseAssessment can
// handle.
const systemPrompt = `You are a task prioritization assistant. Analyze the task and suggest a priority (low, medium or high) with a short natural language explanation. The explanation must mention the specific keywords, factors or context that influenced the decision.

Reply with exactly two lines in this format:
PRIORITY: <low|medium|high>
REASON: <one sentence naming the key factors>`

// BuildUserPrompt assembles the user message for one assessment call.
func BuildUserPrompt(title, description string) string {
	var b strings.Builder

	b.WriteString("Title: ")
	b.WriteString(title)

	if strings.TrimSpace(description) != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(description)
	}

	return b.String()
}
