package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

var validate = validator.New()

// -------- Core auth --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`

	// Role-specific fields; which ones are required depends on Role.
	School       string `json:"school"`
	Subjects     string `json:"subjects"`
	Grade        string `json:"grade"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	if err := validate.Struct(r); err != nil {
		return mapValidationErrors(err)
	}
	if !domain.IsValidRole(r.Role) {
		return domain.ErrInvalidRole(r.Role)
	}

	switch domain.Role(r.Role) {
	case domain.RoleTeacher:
		if r.School == "" {
			return domain.ErrMissingField("school")
		}
	case domain.RoleTutor:
		if r.Relationship == "" {
			return domain.ErrMissingField("relationship")
		}
	case domain.RoleStudent:
		if r.School == "" {
			return domain.ErrMissingField("school")
		}
		if r.Grade == "" {
			return domain.ErrMissingField("grade")
		}
	}
	return nil
}

func (r *RegisterRequest) Ext() domain.ExtensionFields {
	return domain.ExtensionFields{
		School:       r.School,
		Subjects:     r.Subjects,
		Grade:        r.Grade,
		Relationship: r.Relationship,
		Phone:        r.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validate.Struct(r); err != nil {
		return mapValidationErrors(err)
	}
	return nil
}

// -------- Profile / password (authenticated) --------

// UpdateProfileRequest replaces the display name and the extension fields
// for the caller's role; fields for other roles are ignored.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	School       string `json:"school"`
	Subjects     string `json:"subjects"`
	Grade        string `json:"grade"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

func (r *UpdateProfileRequest) Ext() domain.ExtensionFields {
	return domain.ExtensionFields{
		School:       r.School,
		Subjects:     r.Subjects,
		Grade:        r.Grade,
		Relationship: r.Relationship,
		Phone:        r.Phone,
	}
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (r *PasswordChangeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return mapValidationErrors(err)
	}
	return nil
}

// mapValidationErrors converts validator errors into the domain taxonomy
// so clients see the same stable codes for every validation failure.
func mapValidationErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInvalidField("body", err.Error())
	}

	fe := verrs[0]
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	case "min":
		if field == "password" || field == "new_password" {
			return domain.ErrWeakPassword("min length " + fe.Param())
		}
		return domain.ErrInvalidField(field, "too short")
	default:
		return domain.ErrInvalidField(field, fe.Tag())
	}
}

func jsonFieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "CurrentPassword":
		return "current_password"
	case "NewPassword":
		return "new_password"
	default:
		return strings.ToLower(fe.Field())
	}
}
