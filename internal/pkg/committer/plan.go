// Package committer applies Spanner mutations collected by usecases.
//
// Repositories never write. They return *spanner.Mutation values which the
// usecase collects into a CommitPlan together with outbox events, and the
// plan is applied in one commit:
//
//	item, err := repo.GetByID(ctx, id)
//	if err := item.SetPrice(price, now); err != nil {
//	    return err
//	}
//
//	plan := committer.NewPlan()
//	plan.Add(repo.UpdateMut(item))
//	for _, event := range item.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(event))
//	}
//	return committer.ApplyWithVersionCheck(ctx, committer.VersionGuard{...}, plan)
//
// Operations that must read and write atomically use ReadWrite, which runs
// the callback inside a Spanner read-write transaction.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when the stored version no longer matches
// the version the caller loaded.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// CommitPlan is a typed wrapper around Spanner mutations.
// It collects mutations from multiple sources and applies them atomically.
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

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
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

// VersionGuard identifies the row whose version column is checked before
// a plan is applied.
type VersionGuard struct {
	Table           string
	Key             spanner.Key
	VersionColumn   string
	ExpectedVersion int64
}

// ErrorMapper translates raw Spanner errors into the caller's taxonomy.
type ErrorMapper func(op string, err error) error

// Option configures a Committer.
type Option func(*Committer)

// WithErrorMapper sets the function applied to every failed commit.
func WithErrorMapper(fn ErrorMapper) Option {
	return func(c *Committer) { c.mapErr = fn }
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
	mapErr ErrorMapper
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client, opts ...Option) *Committer {
	c := &Committer{
		client: client,
		mapErr: func(op string, err error) error { return fmt.Errorf("%s: %w", op, err) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return c.mapErr("apply commit plan", err)
	}
	return nil
}

// ReadWrite runs fn inside a read-write transaction. The client library
// re-runs fn when Spanner aborts the transaction, so fn must not have side
// effects outside txn.
func (c *Committer) ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	if _, err := c.client.ReadWriteTransaction(ctx, fn); err != nil {
		return c.mapErr("read-write transaction", err)
	}
	return nil
}

// ApplyWithVersionCheck applies the plan only if the guarded row still has
// the expected version. Returns an error matching ErrVersionConflict otherwise.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, guard VersionGuard, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	return c.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if err := CheckVersion(ctx, txn, guard); err != nil {
			return err
		}
		return txn.BufferWrite(plan.Mutations())
	})
}

// CheckVersion reads the guarded version inside txn.
func CheckVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, guard VersionGuard) error {
	column := guard.VersionColumn
	if column == "" {
		column = "version"
	}

	row, err := txn.ReadRow(ctx, guard.Table, guard.Key, []string{column})
	if err != nil {
		return fmt.Errorf("read %s version: %w", guard.Table, err)
	}

	var current int64
	if err := row.Column(0, &current); err != nil {
		return fmt.Errorf("parse %s version: %w", guard.Table, err)
	}

	if current != guard.ExpectedVersion {
		return fmt.Errorf("%w: %s %v expected version %d, found %d",
			ErrVersionConflict, guard.Table, guard.Key, guard.ExpectedVersion, current)
	}
	return nil
}
