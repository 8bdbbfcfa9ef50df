package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a person's contact record. Its lifecycle is independent from
// any organization; membership is expressed through associations.
type Contact struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     *string
	phone     *string
	mobile    *string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func New(id uuid.UUID, firstName, lastName string) Contact {
	now := time.Now().UTC()
	return Contact{
		id:        id,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
}

func Hydrate(
	id uuid.UUID,
	firstName string,
	lastName string,
	email *string,
	phone *string,
	mobile *string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Contact {
	return Contact{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		phone:     phone,
		mobile:    mobile,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Contact) ID() uuid.UUID        { return c.id }
func (c Contact) FirstName() string    { return c.firstName }
func (c Contact) LastName() string     { return c.lastName }
func (c Contact) Email() *string       { return c.email }
func (c Contact) Phone() *string       { return c.phone }
func (c Contact) Mobile() *string      { return c.mobile }
func (c Contact) IsActive() bool       { return c.isActive }
func (c Contact) CreatedAt() time.Time { return c.createdAt }
func (c Contact) UpdatedAt() time.Time { return c.updatedAt }
func (c Contact) IsZero() bool         { return c.id == uuid.Nil }

func (c Contact) FullName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}
