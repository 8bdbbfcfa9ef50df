package contact

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iota-uz/relations/pkg/constants"
	"github.com/iota-uz/relations/pkg/serrors"
)

type CreateDTO struct {
	FirstName string  `json:"first_name" validate:"required,max=255"`
	LastName  string  `json:"last_name" validate:"required,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Mobile    *string `json:"mobile" validate:"omitempty,max=50"`
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = trimPtr(d.Email)
	d.Phone = trimPtr(d.Phone)
	d.Mobile = trimPtr(d.Mobile)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity(id uuid.UUID) Contact {
	now := time.Now().UTC()
	return Contact{
		id:        id,
		firstName: d.FirstName,
		lastName:  d.LastName,
		email:     d.Email,
		phone:     d.Phone,
		mobile:    d.Mobile,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
}

type UpdateDTO struct {
	FirstName *string  `json:"first_name" validate:"omitempty,max=255"`
	LastName  *string  `json:"last_name" validate:"omitempty,max=255"`
	Email     **string `json:"email"`
	Phone     **string `json:"phone"`
	Mobile    **string `json:"mobile"`
	IsActive  *bool    `json:"is_active"`
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	if d.FirstName != nil {
		trimmed := strings.TrimSpace(*d.FirstName)
		d.FirstName = &trimmed
		if trimmed == "" {
			return serrors.ValidationErrors{
				"FirstName": serrors.NewError("VALIDATION_required", "first name cannot be empty", ""),
			}, false
		}
	}
	if d.LastName != nil {
		trimmed := strings.TrimSpace(*d.LastName)
		d.LastName = &trimmed
		if trimmed == "" {
			return serrors.ValidationErrors{
				"LastName": serrors.NewError("VALIDATION_required", "last name cannot be empty", ""),
			}, false
		}
	}
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Apply(c Contact) Contact {
	if d.FirstName != nil {
		c.firstName = *d.FirstName
	}
	if d.LastName != nil {
		c.lastName = *d.LastName
	}
	if d.Email != nil {
		c.email = *d.Email
	}
	if d.Phone != nil {
		c.phone = *d.Phone
	}
	if d.Mobile != nil {
		c.mobile = *d.Mobile
	}
	if d.IsActive != nil {
		c.isActive = *d.IsActive
	}
	c.updatedAt = time.Now().UTC()
	return c
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
