package organization

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iota-uz/relations/pkg/constants"
	"github.com/iota-uz/relations/pkg/serrors"
)

type CreateDTO struct {
	Code        *string    `json:"code" validate:"omitempty,max=100"`
	Name        string     `json:"name" validate:"required,max=255"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Phone       *string    `json:"phone" validate:"omitempty,max=50"`
	Website     *string    `json:"website" validate:"omitempty,url"`
	Industry    *string    `json:"industry" validate:"omitempty,max=255"`
	Address     *string    `json:"address" validate:"omitempty,max=255"`
	City        *string    `json:"city" validate:"omitempty,max=255"`
	State       *string    `json:"state" validate:"omitempty,max=255"`
	PostalCode  *string    `json:"postal_code" validate:"omitempty,max=20"`
	CountryCode *string    `json:"country_code" validate:"omitempty,len=2"`
	Timezone    *string    `json:"timezone" validate:"omitempty,max=64"`
	Currency    *string    `json:"currency" validate:"omitempty,len=3"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = trimPtr(d.Code)
	d.Email = trimPtr(d.Email)
	d.Phone = trimPtr(d.Phone)
	d.Website = trimPtr(d.Website)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity(id uuid.UUID) Organization {
	now := time.Now().UTC()
	return Organization{
		id:          id,
		code:        d.Code,
		name:        d.Name,
		email:       d.Email,
		phone:       d.Phone,
		website:     d.Website,
		industry:    d.Industry,
		address:     d.Address,
		city:        d.City,
		state:       d.State,
		postalCode:  d.PostalCode,
		countryCode: d.CountryCode,
		timezone:    d.Timezone,
		currency:    d.Currency,
		parentID:    d.ParentID,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}
}

// UpdateDTO patches an existing organization. Single-pointer fields replace
// when set; double pointers distinguish "leave alone" from "set to null"
// for clearable references.
type UpdateDTO struct {
	Code        **string    `json:"code"`
	Name        *string     `json:"name" validate:"omitempty,max=255"`
	Email       **string    `json:"email"`
	Phone       **string    `json:"phone"`
	Website     **string    `json:"website"`
	Industry    **string    `json:"industry"`
	Address     **string    `json:"address"`
	City        **string    `json:"city"`
	State       **string    `json:"state"`
	PostalCode  **string    `json:"postal_code"`
	CountryCode **string    `json:"country_code"`
	Timezone    **string    `json:"timezone"`
	Currency    **string    `json:"currency"`
	ParentID    **uuid.UUID `json:"parent_id"`
	IsActive    *bool       `json:"is_active"`
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	if d.Name != nil {
		trimmed := strings.TrimSpace(*d.Name)
		d.Name = &trimmed
		if trimmed == "" {
			return serrors.ValidationErrors{
				"Name": serrors.NewError("VALIDATION_required", "name cannot be empty", ""),
			}, false
		}
	}
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Apply(o Organization) Organization {
	if d.Code != nil {
		o.code = *d.Code
	}
	if d.Name != nil {
		o.name = *d.Name
	}
	if d.Email != nil {
		o.email = *d.Email
	}
	if d.Phone != nil {
		o.phone = *d.Phone
	}
	if d.Website != nil {
		o.website = *d.Website
	}
	if d.Industry != nil {
		o.industry = *d.Industry
	}
	if d.Address != nil {
		o.address = *d.Address
	}
	if d.City != nil {
		o.city = *d.City
	}
	if d.State != nil {
		o.state = *d.State
	}
	if d.PostalCode != nil {
		o.postalCode = *d.PostalCode
	}
	if d.CountryCode != nil {
		o.countryCode = *d.CountryCode
	}
	if d.Timezone != nil {
		o.timezone = *d.Timezone
	}
	if d.Currency != nil {
		o.currency = *d.Currency
	}
	if d.ParentID != nil {
		o.parentID = *d.ParentID
	}
	if d.IsActive != nil {
		o.isActive = *d.IsActive
	}
	o.updatedAt = time.Now().UTC()
	return o
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
