package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeTracker(t *testing.T) {
	ct := NewChangeTracker()
	assert.False(t, ct.HasChanges())
	assert.Empty(t, ct.DirtyFields())

	ct.MarkDirty(FieldStock, FieldName, FieldStock)

	assert.True(t, ct.HasChanges())
	assert.True(t, ct.Dirty(FieldName))
	assert.False(t, ct.Dirty(FieldPrice))
	assert.Equal(t, []string{FieldName, FieldStock}, ct.DirtyFields())

	assert.True(t, ct.Any(FieldPrice, FieldStock))
	assert.False(t, ct.Any(FieldPrice, FieldCategory))
	assert.False(t, ct.Any())

	ct.Clear()
	assert.False(t, ct.HasChanges())
	assert.False(t, ct.Dirty(FieldName))
}
