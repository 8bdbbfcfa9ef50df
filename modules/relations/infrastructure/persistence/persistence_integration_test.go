//go:build integration

package persistence_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/contact"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/itf"
	"github.com/iota-uz/relations/pkg/sid"
)

func TestOrganizationRepository_CRUD(t *testing.T) {
	e := itf.Setup(t)
	repo := persistence.NewOrganizationRepository()

	dto := &organization.CreateDTO{Name: "Acme"}
	_, ok := dto.Ok()
	require.True(t, ok)

	created, err := repo.Create(e.Ctx, dto.ToEntity(sid.New()))
	require.NoError(t, err)

	got, err := repo.GetByID(e.Ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name())

	exists, err := repo.Exists(e.Ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	name := "Acme Global"
	updated, err := repo.Update(e.Ctx, (&organization.UpdateDTO{Name: &name}).Apply(got))
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name())

	require.NoError(t, repo.Delete(e.Ctx, created.ID()))
	_, err = repo.GetByID(e.Ctx, created.ID())
	assert.ErrorIs(t, err, persistence.ErrOrganizationNotFound)
}

func TestOrganizationRepository_UpdateMissing(t *testing.T) {
	e := itf.Setup(t)
	repo := persistence.NewOrganizationRepository()

	phantom := (&organization.CreateDTO{Name: "Ghost"}).ToEntity(sid.New())
	_, err := repo.Update(e.Ctx, phantom)
	assert.ErrorIs(t, err, persistence.ErrOrganizationNotFound)
}

func TestOrganizationRepository_ChildrenOfOrder(t *testing.T) {
	e := itf.Setup(t)
	repo := persistence.NewOrganizationRepository()

	root, err := repo.Create(e.Ctx, (&organization.CreateDTO{Name: "Root"}).ToEntity(sid.New()))
	require.NoError(t, err)

	rootID := root.ID()
	var want []uuid.UUID
	for _, name := range []string{"First", "Second", "Third"} {
		child, err := repo.Create(e.Ctx, (&organization.CreateDTO{Name: name, ParentID: &rootID}).ToEntity(sid.New()))
		require.NoError(t, err)
		want = append(want, child.ID())
	}

	children, err := repo.ChildrenOf(e.Ctx, rootID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	for i, child := range children {
		assert.Equal(t, want[i], child.ID())
	}
}

func TestOrganizationRepository_LockParentOf(t *testing.T) {
	e := itf.Setup(t)
	repo := persistence.NewOrganizationRepository()

	root, err := repo.Create(e.Ctx, (&organization.CreateDTO{Name: "Root"}).ToEntity(sid.New()))
	require.NoError(t, err)
	rootID := root.ID()
	child, err := repo.Create(e.Ctx, (&organization.CreateDTO{Name: "Child", ParentID: &rootID}).ToEntity(sid.New()))
	require.NoError(t, err)

	parent, exists, err := repo.LockParentOf(e.Ctx, child.ID())
	require.NoError(t, err)
	require.True(t, exists)
	require.NotNil(t, parent)
	assert.Equal(t, rootID, *parent)

	parent, exists, err = repo.LockParentOf(e.Ctx, rootID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Nil(t, parent)

	_, exists, err = repo.LockParentOf(e.Ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestContactRepository_Pagination(t *testing.T) {
	e := itf.Setup(t)
	repo := persistence.NewContactRepository()

	for _, last := range []string{"Alpha", "Beta", "Gamma"} {
		dto := &contact.CreateDTO{FirstName: "Jo", LastName: last}
		_, ok := dto.Ok()
		require.True(t, ok)
		_, err := repo.Create(e.Ctx, dto.ToEntity(sid.New()))
		require.NoError(t, err)
	}

	items, total, err := repo.GetPaginated(e.Ctx, &contact.FindParams{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)

	items, _, err = repo.GetPaginated(e.Ctx, &contact.FindParams{Q: "beta"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].LastName())
}
