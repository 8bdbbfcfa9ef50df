//go:build integration

package services_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/association"
	"github.com/iota-uz/relations/modules/relations/services"
)

func TestLink_DuplicatePairRejected(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	c := e.createContact(t, "Jo", "Doe")

	e.link(t, org.ID(), c.ID())

	_, err := e.assocs.Link(e.Ctx, org.ID(), c.ID(), &association.LinkDTO{})
	requireCode(t, err, services.CodeDuplicate)

	rows, err := e.queries.ActiveAssociations(e.Ctx, org.ID())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLink_MissingEndpoints(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	c := e.createContact(t, "Jo", "Doe")

	_, err := e.assocs.Link(e.Ctx, uuid.New(), c.ID(), &association.LinkDTO{})
	requireCode(t, err, services.CodeNotFound)

	_, err = e.assocs.Link(e.Ctx, org.ID(), uuid.New(), &association.LinkDTO{})
	requireCode(t, err, services.CodeNotFound)
}

func TestSetReportsTo_CycleRejectedAtomically(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	a := e.link(t, org.ID(), e.createContact(t, "A", "One").ID())
	b := e.link(t, org.ID(), e.createContact(t, "B", "Two").ID())

	aID, bID := a.ID(), b.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, aID, &bID)
	require.NoError(t, err)

	_, err = e.assocs.SetReportsTo(e.Ctx, bID, &aID)
	requireCode(t, err, services.CodeCycle)

	// The rejected edge must not have been committed.
	got, err := e.assocs.GetByID(e.Ctx, bID)
	require.NoError(t, err)
	assert.Nil(t, got.ReportsToID())
}

func TestSetReportsTo_SelfRejected(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	a := e.link(t, org.ID(), e.createContact(t, "A", "One").ID())

	aID := a.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, aID, &aID)
	requireCode(t, err, services.CodeSelfReference)
}

func TestSetReportsTo_CrossOrganizationRejected(t *testing.T) {
	e := setupEnv(t)
	orgA := e.createOrg(t, "Acme", nil)
	orgB := e.createOrg(t, "Globex", nil)
	a := e.link(t, orgA.ID(), e.createContact(t, "A", "One").ID())
	b := e.link(t, orgB.ID(), e.createContact(t, "B", "Two").ID())

	bID := b.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, a.ID(), &bID)
	requireCode(t, err, services.CodeInvalidBody)
}

func TestSetReportsTo_NilClears(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	a := e.link(t, org.ID(), e.createContact(t, "A", "One").ID())
	b := e.link(t, org.ID(), e.createContact(t, "B", "Two").ID())

	bID := b.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, a.ID(), &bID)
	require.NoError(t, err)

	cleared, err := e.assocs.SetReportsTo(e.Ctx, a.ID(), nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.ReportsToID())
}

func TestSetPrimary_SingleWinner(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	a := e.link(t, org.ID(), e.createContact(t, "A", "One").ID())
	b := e.link(t, org.ID(), e.createContact(t, "B", "Two").ID())

	_, err := e.assocs.SetPrimary(e.Ctx, a.ID())
	require.NoError(t, err)
	_, err = e.assocs.SetPrimary(e.Ctx, b.ID())
	require.NoError(t, err)

	assertSinglePrimary(t, e, org.ID(), b.ID())
}

func TestSetPrimary_ConcurrentCallsLeaveOnePrimary(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)

	ids := make([]uuid.UUID, 0, 4)
	for _, name := range []string{"One", "Two", "Three", "Four"} {
		a := e.link(t, org.ID(), e.createContact(t, "C", name).ID())
		ids = append(ids, a.ID())
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			// Lock contention may surface as CONFLICT; the invariant
			// below is what matters.
			_, _ = e.assocs.SetPrimary(e.Ctx, id)
		}(id)
	}
	wg.Wait()

	rows, err := e.queries.ActiveAssociations(e.Ctx, org.ID())
	require.NoError(t, err)
	primaries := 0
	for _, row := range rows {
		if row.IsPrimary() {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestUnlink_ClearsDependentReportsTo(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	boss := e.link(t, org.ID(), e.createContact(t, "Big", "Boss").ID())
	report := e.link(t, org.ID(), e.createContact(t, "Line", "Report").ID())

	bossID := boss.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, report.ID(), &bossID)
	require.NoError(t, err)

	require.NoError(t, e.assocs.Unlink(e.Ctx, bossID))

	survivor, err := e.assocs.GetByID(e.Ctx, report.ID())
	require.NoError(t, err)
	assert.Nil(t, survivor.ReportsToID())

	_, err = e.assocs.GetByID(e.Ctx, bossID)
	requireCode(t, err, services.CodeNotFound)
}

func TestReportingChain_RootIsSelfOnly(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	root := e.link(t, org.ID(), e.createContact(t, "Top", "Dog").ID())

	chain, err := e.queries.ReportingChain(e.Ctx, root.ID())
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, root.ID(), chain[0].ID())
}

func TestReportingChain_NearestFirst(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	top := e.link(t, org.ID(), e.createContact(t, "Top", "Dog").ID())
	mid := e.link(t, org.ID(), e.createContact(t, "Mid", "Manager").ID())
	leaf := e.link(t, org.ID(), e.createContact(t, "Leaf", "Worker").ID())

	topID, midID := top.ID(), mid.ID()
	_, err := e.assocs.SetReportsTo(e.Ctx, midID, &topID)
	require.NoError(t, err)
	_, err = e.assocs.SetReportsTo(e.Ctx, leaf.ID(), &midID)
	require.NoError(t, err)

	chain, err := e.queries.ReportingChain(e.Ctx, leaf.ID())
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, leaf.ID(), chain[0].ID())
	assert.Equal(t, midID, chain[1].ID())
	assert.Equal(t, topID, chain[2].ID())
}

func TestDeactivate_HiddenFromActiveList(t *testing.T) {
	e := setupEnv(t)
	org := e.createOrg(t, "Acme", nil)
	a := e.link(t, org.ID(), e.createContact(t, "Jo", "Doe").ID())

	_, err := e.assocs.Deactivate(e.Ctx, a.ID())
	require.NoError(t, err)

	rows, err := e.queries.ActiveAssociations(e.Ctx, org.ID())
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Row survives, only hidden.
	got, err := e.assocs.GetByID(e.Ctx, a.ID())
	require.NoError(t, err)
	assert.False(t, got.IsActive())
}

func assertSinglePrimary(t *testing.T, e *env, orgID, want uuid.UUID) {
	t.Helper()
	rows, err := e.queries.ActiveAssociations(e.Ctx, orgID)
	require.NoError(t, err)

	var primaries []uuid.UUID
	for _, row := range rows {
		if row.IsPrimary() {
			primaries = append(primaries, row.ID())
		}
	}
	require.Len(t, primaries, 1)
	assert.Equal(t, want, primaries[0])
}
