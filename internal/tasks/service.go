package tasks

import (
	"context"
	"fmt"
	"strings"

	"todo-ai-backend/internal/ai"
)

// ValidationError marks input the handlers should reject with a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func errValidation(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// CreateInput is the subset of task fields a client may supply at
// creation time. Priority and status default when empty.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// UpdateInput is a partial update: nil fields stay untouched.
type UpdateInput struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Priority       *string `json:"priority"`
	PriorityReason *string `json:"priority_reason"`
	Status         *string `json:"status"`
}

// Service composes the store and the priority advisor for the API
// use cases.
type Service struct {
	Store   Store
	Advisor ai.Advisor
}

func NewService(store Store, advisor ai.Advisor) *Service {
	return &Service{Store: store, Advisor: advisor}
}

// Create stores a new task. With useAdvisor set, the advisor decides
// the priority and writes the justification; an explicitly supplied
// priority is overridden in that case.
func (s *Service) Create(ctx context.Context, in CreateInput, useAdvisor bool) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}

	if err := validateText(in.Title, in.Description); err != nil {
		return Task{}, err
	}
	if !ValidPriority(in.Priority) {
		return Task{}, errValidation("invalid priority %q", in.Priority)
	}
	if !ValidStatus(in.Status) {
		return Task{}, errValidation("invalid status %q", in.Status)
	}

	t := Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
	}

	if useAdvisor {
		a, err := s.Advisor.Assess(ctx, t.Title, t.Description)
		if err != nil {
			return Task{}, err
		}
		t.Priority = a.Priority
		t.PriorityReason = truncate(a.Reason, MaxReasonLen)
	}

	if err := s.Store.Create(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Analyze runs the advisor without persisting anything.
func (s *Service) Analyze(ctx context.Context, title, description string) (ai.Assessment, error) {
	title = strings.TrimSpace(title)
	if err := validateText(title, description); err != nil {
		return ai.Assessment{}, err
	}
	return s.Advisor.Assess(ctx, title, description)
}

// Reanalyze re-runs the advisor against the stored title and
// description and persists the new priority and reason.
func (s *Service) Reanalyze(ctx context.Context, id int) (Task, error) {
	t, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	a, err := s.Advisor.Assess(ctx, t.Title, t.Description)
	if err != nil {
		return Task{}, err
	}

	t.Priority = a.Priority
	t.PriorityReason = truncate(a.Reason, MaxReasonLen)

	if err := s.Store.Update(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id int) (Task, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Task, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, errValidation("invalid status %q", f.Status)
	}
	if f.Priority != "" && !ValidPriority(f.Priority) {
		return nil, errValidation("invalid priority %q", f.Priority)
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	return s.Store.List(ctx, f)
}

// Update applies a partial update and refreshes updated_at.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (Task, error) {
	t, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.PriorityReason != nil {
		t.PriorityReason = *in.PriorityReason
	}
	if in.Status != nil {
		t.Status = *in.Status
	}

	if err := validateText(t.Title, t.Description); err != nil {
		return Task{}, err
	}
	if !ValidPriority(t.Priority) {
		return Task{}, errValidation("invalid priority %q", t.Priority)
	}
	if !ValidStatus(t.Status) {
		return Task{}, errValidation("invalid status %q", t.Status)
	}
	if len(t.PriorityReason) > MaxReasonLen {
		return Task{}, errValidation("priority_reason exceeds %d characters", MaxReasonLen)
	}

	if err := s.Store.Update(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.Store.Delete(ctx, id)
}

func validateText(title, description string) error {
	if title == "" {
		return errValidation("title is required")
	}
	if len(title) > MaxTitleLen {
		return errValidation("title exceeds %d characters", MaxTitleLen)
	}
	if len(description) > MaxDescriptionLen {
		return errValidation("description exceeds %d characters", MaxDescriptionLen)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
