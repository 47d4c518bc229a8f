package dashboard

import "github.com/cmlabs-hris/hris-portal/internal/domain/user"

// Variant names the dashboard shown to a user.
type Variant string

const (
	VariantUnauthorized Variant = "unauthorized"
	VariantDirector     Variant = "director"
	VariantManager      Variant = "manager"
	VariantTeamLead     Variant = "team_lead"
	VariantEmployee     Variant = "employee"
)

const UnauthorizedMessage = "Unauthorized: User not found or invalid role."

// Select maps a user to its dashboard. It is total: roles outside the
// director, manager and team lead classes get the employee dashboard.
func Select(u *user.User) Variant {
	if u == nil || u.Role == "" {
		return VariantUnauthorized
	}

	switch {
	case u.IsDirector():
		return VariantDirector
	case u.IsManager():
		return VariantManager
	case u.IsTeamLead():
		return VariantTeamLead
	default:
		return VariantEmployee
	}
}
