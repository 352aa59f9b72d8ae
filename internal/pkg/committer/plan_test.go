package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty())

	plan.Add(spanner.Delete("menu_items", spanner.Key{"a"}))
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("menu_items", spanner.Key{"b"}),
		nil,
		spanner.Delete("outbox_events", spanner.Key{"c"}),
	})

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 3, plan.Count())
	assert.Len(t, plan.Mutations(), 3)
}

func TestNewCommitter_Options(t *testing.T) {
	var called string
	c := NewCommitter(nil, WithErrorMapper(func(op string, err error) error {
		called = op
		return err
	}))

	_ = c.mapErr("op", assert.AnError)
	assert.Equal(t, "op", called)
}
