package repo

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
)

func reconstructed(t *testing.T) *domain.MenuItem {
	t.Helper()
	item, err := dataToDomain(domainToData(newTestItem(t, nil)))
	require.NoError(t, err)
	return item
}

func TestMenuItemRepo_InsertMut(t *testing.T) {
	r := NewMenuItemRepo(nil)

	mut, err := r.InsertMut(newTestItem(t, nil))
	require.NoError(t, err)
	assert.NotNil(t, mut)
}

func TestMenuItemRepo_InsertMut_RejectsInvalidItem(t *testing.T) {
	r := NewMenuItemRepo(nil)

	data := domainToData(newTestItem(t, nil))
	data.Name = ""
	item, err := dataToDomain(data)
	require.NoError(t, err)

	mut, err := r.InsertMut(item)
	assert.Nil(t, mut)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMenuItemRepo_UpdateMut_NoChanges(t *testing.T) {
	r := NewMenuItemRepo(nil)

	mut, err := r.UpdateMut(reconstructed(t))
	require.NoError(t, err)
	assert.Nil(t, mut)
}

func TestMenuItemRepo_UpdateMut_DirtyFields(t *testing.T) {
	r := NewMenuItemRepo(nil)
	item := reconstructed(t)

	require.NoError(t, item.SetPrice(domain.MustMoney(425, 100), testNow))

	mut, err := r.UpdateMut(item)
	require.NoError(t, err)
	assert.NotNil(t, mut)
}

func TestMenuItemRepo_VersionGuard(t *testing.T) {
	r := NewMenuItemRepo(nil)
	item := reconstructed(t)

	guard := r.VersionGuard(item)
	assert.Equal(t, m_menu_item.TableName, guard.Table)
	assert.Equal(t, spanner.Key{"item-1"}, guard.Key)
	assert.Equal(t, m_menu_item.Version, guard.VersionColumn)
	assert.Equal(t, item.Version(), guard.ExpectedVersion)
}
