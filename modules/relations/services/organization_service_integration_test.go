//go:build integration

package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/services"
	"github.com/iota-uz/relations/pkg/composables"
)

func TestOrganizationCreate_ParentMustExist(t *testing.T) {
	e := setupEnv(t)
	missing := uuid.New()
	_, err := e.orgs.Create(e.Ctx, &organization.CreateDTO{Name: "Orphan", ParentID: &missing})
	requireCode(t, err, services.CodeNotFound)
}

func TestSubtree_ExcludesSelfAndOrdersRootFirst(t *testing.T) {
	e := setupEnv(t)
	root := e.createOrg(t, "Root", nil)
	rootID := root.ID()
	childA := e.createOrg(t, "Child A", &rootID)
	childB := e.createOrg(t, "Child B", &rootID)
	aID := childA.ID()
	grandchild := e.createOrg(t, "Grandchild", &aID)

	subtree, err := e.queries.Subtree(e.Ctx, rootID)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(subtree))
	for _, o := range subtree {
		assert.NotEqual(t, rootID, o.ID())
		ids = append(ids, o.ID())
	}
	require.Len(t, ids, 3)
	// Breadth-first: both children precede the grandchild.
	assert.Equal(t, []uuid.UUID{childA.ID(), childB.ID(), grandchild.ID()}, ids)
}

func TestSubtree_LeafIsEmpty(t *testing.T) {
	e := setupEnv(t)
	leaf := e.createOrg(t, "Leaf", nil)

	subtree, err := e.queries.Subtree(e.Ctx, leaf.ID())
	require.NoError(t, err)
	assert.Empty(t, subtree)
}

func TestOrganizationUpdate_ReparentCycleRejected(t *testing.T) {
	e := setupEnv(t)
	a := e.createOrg(t, "A", nil)
	aID := a.ID()
	b := e.createOrg(t, "B", &aID)
	bID := b.ID()
	c := e.createOrg(t, "C", &bID)

	// Attaching A under its own grandchild closes a loop.
	cID := c.ID()
	parent := &cID
	_, err := e.orgs.Update(e.Ctx, aID, &organization.UpdateDTO{ParentID: &parent})
	requireCode(t, err, services.CodeCycle)

	got, err := e.orgs.GetByID(e.Ctx, aID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID())
}

func TestOrganizationUpdate_SelfParentRejected(t *testing.T) {
	e := setupEnv(t)
	a := e.createOrg(t, "A", nil)
	aID := a.ID()
	parent := &aID
	_, err := e.orgs.Update(e.Ctx, aID, &organization.UpdateDTO{ParentID: &parent})
	requireCode(t, err, services.CodeSelfReference)
}

func TestOrganizationUpdate_DetachToRoot(t *testing.T) {
	e := setupEnv(t)
	a := e.createOrg(t, "A", nil)
	aID := a.ID()
	b := e.createOrg(t, "B", &aID)

	var detached *uuid.UUID
	updated, err := e.orgs.Update(e.Ctx, b.ID(), &organization.UpdateDTO{ParentID: &detached})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID())
}

func TestOrganizationDelete_CascadesSubtreeAndAssociations(t *testing.T) {
	e := setupEnv(t)
	root := e.createOrg(t, "Root", nil)
	rootID := root.ID()
	child := e.createOrg(t, "Child", &rootID)

	c := e.createContact(t, "Jo", "Doe")
	a := e.link(t, child.ID(), c.ID())

	require.NoError(t, e.orgs.Delete(e.Ctx, rootID))

	_, err := e.orgs.GetByID(e.Ctx, rootID)
	requireCode(t, err, services.CodeNotFound)
	_, err = e.orgs.GetByID(e.Ctx, child.ID())
	requireCode(t, err, services.CodeNotFound)
	_, err = e.assocs.GetByID(e.Ctx, a.ID())
	requireCode(t, err, services.CodeNotFound)

	// The contact itself is untouched.
	_, err = e.contact.GetByID(e.Ctx, c.ID())
	require.NoError(t, err)
}

func TestOrganizationDelete_RollbackLeavesPreState(t *testing.T) {
	e := setupEnv(t)
	root := e.createOrg(t, "Root", nil)
	rootID := root.ID()
	child := e.createOrg(t, "Child", &rootID)

	// Run the cascade inside an explicitly rolled-back transaction: the
	// delete joins it and none of it survives.
	tx, err := e.Pool.Begin(e.Ctx)
	require.NoError(t, err)
	txCtx := composables.WithTx(e.Ctx, tx)

	require.NoError(t, e.orgs.Delete(txCtx, rootID))
	require.NoError(t, tx.Rollback(e.Ctx))

	_, err = e.orgs.GetByID(e.Ctx, rootID)
	require.NoError(t, err)
	_, err = e.orgs.GetByID(e.Ctx, child.ID())
	require.NoError(t, err)
}

func TestOrganizationCreate_DuplicateCode(t *testing.T) {
	e := setupEnv(t)
	code := "ACME"
	_, err := e.orgs.Create(e.Ctx, &organization.CreateDTO{Name: "Acme", Code: &code})
	require.NoError(t, err)

	_, err = e.orgs.Create(e.Ctx, &organization.CreateDTO{Name: "Acme Again", Code: &code})
	requireCode(t, err, services.CodeDuplicate)
}

func TestOrganizationGetPaginated_Search(t *testing.T) {
	e := setupEnv(t)
	e.createOrg(t, "Acme Holdings", nil)
	e.createOrg(t, "Globex", nil)

	items, total, err := e.orgs.GetPaginated(e.Ctx, &organization.FindParams{Q: "acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Holdings", items[0].Name())
}

func TestDepthCap(t *testing.T) {
	e := setupEnv(t)

	parent := e.createOrg(t, "Level 0", nil)
	var lastID uuid.UUID
	for i := 1; i < testMaxDepth; i++ {
		pid := parent.ID()
		parent = e.createOrg(t, "Level", &pid)
		lastID = parent.ID()
	}

	_, err := e.orgs.Create(e.Ctx, &organization.CreateDTO{Name: "Too Deep", ParentID: &lastID})
	requireCode(t, err, services.CodeDepthExceeded)
}
