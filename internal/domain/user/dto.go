package user

import (
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
)

// ProfileResponse is the resolved view of the signed-in user.
type ProfileResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name,omitempty"`
	Email           string    `json:"email,omitempty"`
	Role            string    `json:"role"`
	RoleDisplayName string    `json:"role_display_name"`
	RoleClass       RoleClass `json:"role_class,omitempty"`
	Designation     string    `json:"designation"`
	Department      string    `json:"department,omitempty"`
	DepartmentColor string    `json:"department_color"`
}

// NewProfileResponse builds the profile view of u.
func NewProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:              u.ID.String(),
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		RoleDisplayName: RoleDisplayName(u.Role),
		RoleClass:       RoleClassOf(u.Role),
		Designation:     SimpleDesignation(u.Role),
		Department:      u.Department,
		DepartmentColor: DepartmentColor(u.Department),
	}
}

// RoleResponse is one entry of the role catalog.
type RoleResponse struct {
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	Designation string    `json:"designation"`
	Class       RoleClass `json:"class"`
}

func NewRoleCatalog() []RoleResponse {
	roles := Roles()
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleResponse{
			Role:        string(r),
			DisplayName: RoleDisplayName(r),
			Designation: SimpleDesignation(r),
			Class:       RoleClassOf(r),
		})
	}
	return out
}

// Validate checks the user record received in a login handoff. Unknown role
// literals are accepted; they resolve to the employee dashboard.
func (u *User) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(u.ID.String()) {
		errs = append(errs, validator.ValidationError{
			Field:   "user.id",
			Message: "user.id is required",
		})
	}

	if !validator.IsEmpty(u.Email) && !validator.IsValidEmail(u.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "user.email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
