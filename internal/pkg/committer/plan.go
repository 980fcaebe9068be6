// Package committer collects Spanner mutations into a plan and applies
// them atomically.
//
// Repositories build mutations without applying them; the caller gathers
// them into a CommitPlan and applies the whole plan in one transaction:
//
//	plan := committer.NewPlan()
//	plan.Add(spanner.Update(table, columns, values))
//	return committer.Apply(ctx, plan)
package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier is the part of *spanner.Client the Committer needs.
type Applier interface {
	Apply(ctx context.Context, ms []*spanner.Mutation, opts ...spanner.ApplyOption) (time.Time, error)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client Applier
}

// NewCommitter creates a new Committer.
func NewCommitter(client Applier) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
// The underlying error is wrapped so callers can inspect its gRPC code.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}
