package party

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iota-uz/relations/pkg/constants"
	"github.com/iota-uz/relations/pkg/serrors"
)

type CreateDTO struct {
	Kind               string  `json:"kind" validate:"required,oneof=company person"`
	DisplayName        string  `json:"display_name" validate:"required,max=255"`
	LegalName          *string `json:"legal_name" validate:"omitempty,max=255"`
	Tin                *string `json:"tin" validate:"omitempty,max=50"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,max=100"`
}

func (d *CreateDTO) Normalize() {
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	d.DisplayName = strings.TrimSpace(d.DisplayName)
	d.LegalName = trimPtr(d.LegalName)
	d.Tin = trimPtr(d.Tin)
	d.RegistrationNumber = trimPtr(d.RegistrationNumber)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs != nil {
		return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
	}
	// company-only fields on a person are semantically inconsistent
	if Kind(d.Kind) == KindPerson {
		out := serrors.ValidationErrors{}
		if d.LegalName != nil {
			out["LegalName"] = serrors.NewError("VALIDATION_kind", "legal name applies to company parties only", "")
		}
		if d.RegistrationNumber != nil {
			out["RegistrationNumber"] = serrors.NewError("VALIDATION_kind", "registration number applies to company parties only", "")
		}
		if len(out) > 0 {
			return out, false
		}
	}
	return serrors.ValidationErrors{}, true
}

func (d *CreateDTO) ToEntity(id uuid.UUID) Party {
	now := time.Now().UTC()
	return Party{
		id:                 id,
		kind:               Kind(d.Kind),
		displayName:        d.DisplayName,
		legalName:          d.LegalName,
		tin:                d.Tin,
		registrationNumber: d.RegistrationNumber,
		isActive:           true,
		createdAt:          now,
		updatedAt:          now,
	}
}

type UpdateDTO struct {
	DisplayName        *string  `json:"display_name" validate:"omitempty,max=255"`
	LegalName          **string `json:"legal_name"`
	Tin                **string `json:"tin"`
	RegistrationNumber **string `json:"registration_number"`
	IsActive           *bool    `json:"is_active"`
}

func (d *UpdateDTO) Ok(kind Kind) (serrors.ValidationErrors, bool) {
	if d.DisplayName != nil {
		trimmed := strings.TrimSpace(*d.DisplayName)
		d.DisplayName = &trimmed
		if trimmed == "" {
			return serrors.ValidationErrors{
				"DisplayName": serrors.NewError("VALIDATION_required", "display name cannot be empty", ""),
			}, false
		}
	}
	if kind == KindPerson {
		out := serrors.ValidationErrors{}
		if d.LegalName != nil && *d.LegalName != nil {
			out["LegalName"] = serrors.NewError("VALIDATION_kind", "legal name applies to company parties only", "")
		}
		if d.RegistrationNumber != nil && *d.RegistrationNumber != nil {
			out["RegistrationNumber"] = serrors.NewError("VALIDATION_kind", "registration number applies to company parties only", "")
		}
		if len(out) > 0 {
			return out, false
		}
	}
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Apply(p Party) Party {
	if d.DisplayName != nil {
		p.displayName = *d.DisplayName
	}
	if d.LegalName != nil {
		p.legalName = *d.LegalName
	}
	if d.Tin != nil {
		p.tin = *d.Tin
	}
	if d.RegistrationNumber != nil {
		p.registrationNumber = *d.RegistrationNumber
	}
	if d.IsActive != nil {
		p.isActive = *d.IsActive
	}
	p.updatedAt = time.Now().UTC()
	return p
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
