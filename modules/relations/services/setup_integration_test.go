//go:build integration

package services_test

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/association"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/contact"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/modules/relations/services"
	"github.com/iota-uz/relations/pkg/eventbus"
	"github.com/iota-uz/relations/pkg/itf"
)

const testMaxDepth = 32

type env struct {
	*itf.TestEnvironment

	orgs    *services.OrganizationService
	contact *services.ContactService
	assocs  *services.AssociationService
	queries *services.QueryService
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	bus := eventbus.NewEventPublisher(logger)

	orgRepo := persistence.NewOrganizationRepository()
	contactRepo := persistence.NewContactRepository()
	assocRepo := persistence.NewAssociationRepository()

	return &env{
		TestEnvironment: itf.SetupPool(t),
		orgs:            services.NewOrganizationService(orgRepo, bus, testMaxDepth),
		contact:         services.NewContactService(contactRepo, bus),
		assocs:          services.NewAssociationService(assocRepo, orgRepo, contactRepo, bus, testMaxDepth),
		queries:         services.NewQueryService(orgRepo, assocRepo, testMaxDepth),
	}
}

func (e *env) createOrg(t *testing.T, name string, parent *uuid.UUID) organization.Organization {
	t.Helper()
	o, err := e.orgs.Create(e.Ctx, &organization.CreateDTO{Name: name, ParentID: parent})
	require.NoError(t, err)
	return o
}

func (e *env) createContact(t *testing.T, first, last string) contact.Contact {
	t.Helper()
	c, err := e.contact.Create(e.Ctx, &contact.CreateDTO{FirstName: first, LastName: last})
	require.NoError(t, err)
	return c
}

func (e *env) link(t *testing.T, orgID, contactID uuid.UUID) association.Association {
	t.Helper()
	a, err := e.assocs.Link(e.Ctx, orgID, contactID, &association.LinkDTO{})
	require.NoError(t, err)
	return a
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	se, ok := services.AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %v", err)
	require.Equal(t, code, se.Code)
}
