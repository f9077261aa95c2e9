package user

import (
	"github.com/google/uuid"

	"github.com/joefazee/betpoints/internal/validator"
)

type AssignRoleRequest struct {
	Role string `json:"role"`
}

func (r *AssignRoleRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Role), "role", "must be provided")
	v.Check(validator.MaxRunes(r.Role, 50), "role", "must not be more than 50 characters")
	return v.Valid()
}

type RoleAssignmentResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
