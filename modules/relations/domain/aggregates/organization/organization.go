package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization is a company or legal entity, optionally nested under a
// parent organization. The child row owns the parent reference; parents
// carry no child collection and downward traversal is query-driven.
type Organization struct {
	id          uuid.UUID
	code        *string
	name        string
	email       *string
	phone       *string
	website     *string
	industry    *string
	address     *string
	city        *string
	state       *string
	postalCode  *string
	countryCode *string
	timezone    *string
	currency    *string
	parentID    *uuid.UUID
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func New(id uuid.UUID, name string, parentID *uuid.UUID) Organization {
	now := time.Now().UTC()
	return Organization{
		id:        id,
		name:      strings.TrimSpace(name),
		parentID:  parentID,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
}

func Hydrate(
	id uuid.UUID,
	code *string,
	name string,
	email *string,
	phone *string,
	website *string,
	industry *string,
	address *string,
	city *string,
	state *string,
	postalCode *string,
	countryCode *string,
	timezone *string,
	currency *string,
	parentID *uuid.UUID,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Organization {
	return Organization{
		id:          id,
		code:        code,
		name:        name,
		email:       email,
		phone:       phone,
		website:     website,
		industry:    industry,
		address:     address,
		city:        city,
		state:       state,
		postalCode:  postalCode,
		countryCode: countryCode,
		timezone:    timezone,
		currency:    currency,
		parentID:    parentID,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o Organization) ID() uuid.UUID        { return o.id }
func (o Organization) Code() *string        { return o.code }
func (o Organization) Name() string         { return o.name }
func (o Organization) Email() *string       { return o.email }
func (o Organization) Phone() *string       { return o.phone }
func (o Organization) Website() *string     { return o.website }
func (o Organization) Industry() *string    { return o.industry }
func (o Organization) Address() *string     { return o.address }
func (o Organization) City() *string        { return o.city }
func (o Organization) State() *string       { return o.state }
func (o Organization) PostalCode() *string  { return o.postalCode }
func (o Organization) CountryCode() *string { return o.countryCode }
func (o Organization) Timezone() *string    { return o.timezone }
func (o Organization) Currency() *string    { return o.currency }
func (o Organization) ParentID() *uuid.UUID { return o.parentID }
func (o Organization) IsActive() bool       { return o.isActive }
func (o Organization) CreatedAt() time.Time { return o.createdAt }
func (o Organization) UpdatedAt() time.Time { return o.updatedAt }
func (o Organization) IsZero() bool         { return o.id == uuid.Nil }

func (o Organization) Activate() Organization {
	o.isActive = true
	o.updatedAt = time.Now().UTC()
	return o
}

func (o Organization) Deactivate() Organization {
	o.isActive = false
	o.updatedAt = time.Now().UTC()
	return o
}
