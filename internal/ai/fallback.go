package ai

import (
	"context"
	"errors"
	"log"
)

// FallbackAdvisor runs the primary strategy and degrades to the
// fallback on any remote or parse failure. Callers never see the
// primary's transport errors, only a valid assessment.
type FallbackAdvisor struct {
	Primary  Advisor
	Fallback Advisor
}

func (f *FallbackAdvisor) Assess(ctx context.Context, title, description string) (Assessment, error) {
	a, err := f.Primary.Assess(ctx, title, description)
	if err == nil {
		return a, nil
	}
	if errors.Is(err, ErrEmptyTitle) {
		// input validation failures are not remote failures
		return Assessment{}, err
	}

	log.Printf("[WARN] primary advisor failed, falling back to heuristic: %v", err)
	return f.Fallback.Assess(ctx, title, description)
}
