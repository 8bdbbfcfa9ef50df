// Package relations wires the relationship-graph services over their
// repositories. Callers provide a pgx pool through the context
// (composables.WithPool) and consume the services directly; there is no
// transport layer here.
package relations

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/modules/relations/services"
	"github.com/iota-uz/relations/pkg/configuration"
	"github.com/iota-uz/relations/pkg/eventbus"
)

type Module struct {
	Organizations *services.OrganizationService
	Contacts      *services.ContactService
	Parties       *services.PartyService
	Associations  *services.AssociationService
	Queries       *services.QueryService

	EventBus eventbus.EventBus
}

type ModuleOptions struct {
	// MaxHierarchyDepth overrides the configured depth cap when > 0.
	MaxHierarchyDepth int
	Logger            *logrus.Logger
}

func NewModule(opts *ModuleOptions) *Module {
	conf := configuration.Use()

	maxDepth := conf.MaxHierarchyDepth
	logger := conf.Logger()
	if opts != nil {
		if opts.MaxHierarchyDepth > 0 {
			maxDepth = opts.MaxHierarchyDepth
		}
		if opts.Logger != nil {
			logger = opts.Logger
		}
	}

	bus := eventbus.NewEventPublisher(logger)

	orgRepo := persistence.NewOrganizationRepository()
	contactRepo := persistence.NewContactRepository()
	partyRepo := persistence.NewPartyRepository()
	assocRepo := persistence.NewAssociationRepository()

	return &Module{
		Organizations: services.NewOrganizationService(orgRepo, bus, maxDepth),
		Contacts:      services.NewContactService(contactRepo, bus),
		Parties:       services.NewPartyService(partyRepo, bus),
		Associations:  services.NewAssociationService(assocRepo, orgRepo, contactRepo, bus, maxDepth),
		Queries:       services.NewQueryService(orgRepo, assocRepo, maxDepth),
		EventBus:      bus,
	}
}
