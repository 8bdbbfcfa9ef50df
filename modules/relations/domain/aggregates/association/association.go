package association

import (
	"time"

	"github.com/google/uuid"
)

// Association links one contact to one organization and carries role
// metadata plus an optional reporting edge to another association in the
// same organization. The (organization, contact) pair is unique; role
// changes update the row, they never create a second one.
type Association struct {
	id             uuid.UUID
	organizationID uuid.UUID
	contactID      uuid.UUID
	jobTitle       *string
	department     *string
	role           *string
	reportsToID    *uuid.UUID
	isPrimary      bool
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func New(id, organizationID, contactID uuid.UUID) Association {
	now := time.Now().UTC()
	return Association{
		id:             id,
		organizationID: organizationID,
		contactID:      contactID,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}
}

func Hydrate(
	id uuid.UUID,
	organizationID uuid.UUID,
	contactID uuid.UUID,
	jobTitle *string,
	department *string,
	role *string,
	reportsToID *uuid.UUID,
	isPrimary bool,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Association {
	return Association{
		id:             id,
		organizationID: organizationID,
		contactID:      contactID,
		jobTitle:       jobTitle,
		department:     department,
		role:           role,
		reportsToID:    reportsToID,
		isPrimary:      isPrimary,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (a Association) ID() uuid.UUID             { return a.id }
func (a Association) OrganizationID() uuid.UUID { return a.organizationID }
func (a Association) ContactID() uuid.UUID      { return a.contactID }
func (a Association) JobTitle() *string         { return a.jobTitle }
func (a Association) Department() *string       { return a.department }
func (a Association) Role() *string             { return a.role }
func (a Association) ReportsToID() *uuid.UUID   { return a.reportsToID }
func (a Association) IsPrimary() bool           { return a.isPrimary }
func (a Association) IsActive() bool            { return a.isActive }
func (a Association) CreatedAt() time.Time      { return a.createdAt }
func (a Association) UpdatedAt() time.Time      { return a.updatedAt }
func (a Association) IsZero() bool              { return a.id == uuid.Nil }

func (a Association) WithReportsTo(target *uuid.UUID) Association {
	a.reportsToID = target
	a.updatedAt = time.Now().UTC()
	return a
}

func (a Association) WithPrimary(primary bool) Association {
	a.isPrimary = primary
	a.updatedAt = time.Now().UTC()
	return a
}

// Deactivate soft-disables the association, preserving history for a
// contact who left the role.
func (a Association) Deactivate() Association {
	a.isActive = false
	a.updatedAt = time.Now().UTC()
	return a
}

func (a Association) Activate() Association {
	a.isActive = true
	a.updatedAt = time.Now().UTC()
	return a
}
