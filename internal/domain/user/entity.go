package user

import "github.com/cmlabs-hris/hris-portal/internal/pkg/utils"

type Role string

const (
	// Director class
	RoleGlobalHRDirector            Role = "global_hr_director"
	RoleGlobalOperationsDirector    Role = "global_operations_director"
	RoleEngineeringDirector         Role = "engineering_director"
	RoleDirectorTechTeam            Role = "director_tech_team"
	RoleDirectorBusinessDevelopment Role = "director_business_development"

	// Manager class
	RoleTalentAcquisitionManager   Role = "talent_acquisition_manager"
	RoleProjectTechManager         Role = "project_tech_manager"
	RoleQualityAssuranceManager    Role = "quality_assurance_manager"
	RoleSoftwareDevelopmentManager Role = "software_development_manager"
	RoleSystemsIntegrationManager  Role = "systems_integration_manager"
	RoleClientRelationsManager     Role = "client_relations_manager"

	RoleTeamLead Role = "team_lead"
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
)

// User is the record the upstream API hands out at login. It is persisted as
// JSON under the currentUser key of a portal session.
type User struct {
	ID         utils.FlexString `json:"id"`
	Name       string           `json:"name,omitempty"`
	Email      string           `json:"email,omitempty"`
	Role       Role             `json:"role,omitempty"`
	Department string           `json:"department,omitempty"`
	Token      string           `json:"token,omitempty"`
}

// IsDirector checks if user holds a director-class role
func (u *User) IsDirector() bool {
	return IsDirector(u.Role)
}

// IsManager checks if user holds a manager-class role
func (u *User) IsManager() bool {
	return IsManager(u.Role)
}

// IsTeamLead checks if user is a team lead
func (u *User) IsTeamLead() bool {
	return IsTeamLead(u.Role)
}
