package committer

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingApplier struct {
	applied [][]*spanner.Mutation
	err     error
}

func (r *recordingApplier) Apply(_ context.Context, ms []*spanner.Mutation, _ ...spanner.ApplyOption) (time.Time, error) {
	r.applied = append(r.applied, ms)
	return time.Time{}, r.err
}

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	plan.Add(spanner.Delete("products", spanner.Key{int64(1)}))

	assert.Equal(t, 1, plan.Count())
	assert.Len(t, plan.Mutations(), 1)
}

func TestCommitter_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("empty plan is a no-op", func(t *testing.T) {
		applier := &recordingApplier{}
		require.NoError(t, NewCommitter(applier).Apply(ctx, NewPlan()))
		assert.Empty(t, applier.applied)
	})

	t.Run("mutations applied together", func(t *testing.T) {
		applier := &recordingApplier{}
		plan := NewPlan()
		plan.Add(spanner.Delete("reviews", spanner.Key{int64(1)}))
		plan.Add(spanner.Delete("comments", spanner.Key{int64(1)}))

		require.NoError(t, NewCommitter(applier).Apply(ctx, plan))
		require.Len(t, applier.applied, 1)
		assert.Len(t, applier.applied[0], 2)
	})

	t.Run("errors are wrapped", func(t *testing.T) {
		boom := errors.New("aborted")
		plan := NewPlan()
		plan.Add(spanner.Delete("products", spanner.Key{int64(1)}))

		err := NewCommitter(&recordingApplier{err: boom}).Apply(ctx, plan)
		assert.ErrorIs(t, err, boom)
	})
}
