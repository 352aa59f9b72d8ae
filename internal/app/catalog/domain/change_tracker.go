package domain

import (
	"maps"
	"slices"
)

// ChangeTracker records which MenuItem fields a mutation touched since the
// item was loaded. The repository turns it into a partial update and the
// update use case uses it to decide whether cached statistics went stale.
type ChangeTracker struct {
	fields map[string]struct{}
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{fields: map[string]struct{}{}}
}

func (ct *ChangeTracker) MarkDirty(fields ...string) {
	for _, f := range fields {
		ct.fields[f] = struct{}{}
	}
}

func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.fields[field]
	return ok
}

// Any reports whether at least one of fields is dirty.
func (ct *ChangeTracker) Any(fields ...string) bool {
	return slices.ContainsFunc(fields, ct.Dirty)
}

func (ct *ChangeTracker) HasChanges() bool { return len(ct.fields) > 0 }

// Clear is called once the pending changes have been persisted.
func (ct *ChangeTracker) Clear() { clear(ct.fields) }

// DirtyFields lists the touched fields in sorted order, for logs.
func (ct *ChangeTracker) DirtyFields() []string {
	return slices.Sorted(maps.Keys(ct.fields))
}
