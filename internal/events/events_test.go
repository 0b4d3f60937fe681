package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	id := 7

	assert.NotPanics(t, func() {
		r.Log(context.Background(), "task_created", &id, map[string]any{"priority": "high"})
		r.Log(context.Background(), "priority_analyzed", nil, nil)
	})

	assert.NotPanics(t, func() {
		New(nil).Log(context.Background(), "task_deleted", nil, nil)
	})
}
