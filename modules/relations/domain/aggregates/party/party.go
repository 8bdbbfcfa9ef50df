package party

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
)

func KindFromString(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "company":
		return KindCompany, nil
	case "person":
		return KindPerson, nil
	default:
		return "", fmt.Errorf("invalid party kind: %q, must be 'company' or 'person'", s)
	}
}

// Party is the unified company-or-person entity. legal_name, tin and
// registration_number carry meaning only for kind=company; the service
// boundary enforces that, not the schema.
type Party struct {
	id                 uuid.UUID
	kind               Kind
	displayName        string
	legalName          *string
	tin                *string
	registrationNumber *string
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
}

func New(id uuid.UUID, kind Kind, displayName string) Party {
	now := time.Now().UTC()
	return Party{
		id:          id,
		kind:        kind,
		displayName: strings.TrimSpace(displayName),
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}
}

func Hydrate(
	id uuid.UUID,
	kind Kind,
	displayName string,
	legalName *string,
	tin *string,
	registrationNumber *string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Party {
	return Party{
		id:                 id,
		kind:               kind,
		displayName:        displayName,
		legalName:          legalName,
		tin:                tin,
		registrationNumber: registrationNumber,
		isActive:           isActive,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (p Party) ID() uuid.UUID                { return p.id }
func (p Party) Kind() Kind                   { return p.kind }
func (p Party) DisplayName() string          { return p.displayName }
func (p Party) LegalName() *string           { return p.legalName }
func (p Party) Tin() *string                 { return p.tin }
func (p Party) RegistrationNumber() *string  { return p.registrationNumber }
func (p Party) IsActive() bool               { return p.isActive }
func (p Party) CreatedAt() time.Time         { return p.createdAt }
func (p Party) UpdatedAt() time.Time         { return p.updatedAt }
func (p Party) IsZero() bool                 { return p.id == uuid.Nil }

func (p Party) Activate() Party {
	p.isActive = true
	p.updatedAt = time.Now().UTC()
	return p
}

// Deactivate is the only removal path for a party; rows are never
// physically deleted because historical associations may reference them.
func (p Party) Deactivate() Party {
	p.isActive = false
	p.updatedAt = time.Now().UTC()
	return p
}
