package user

// RoleClass partitions the role literals. Classes never overlap.
type RoleClass string

const (
	ClassNone     RoleClass = ""
	ClassDirector RoleClass = "director"
	ClassManager  RoleClass = "manager"
	ClassTeamLead RoleClass = "team_lead"
	ClassEmployee RoleClass = "employee"
)

const (
	DesignationDirector = "Director"
	DesignationManager  = "Manager"
	DesignationTeamLead = "Team Lead"
	DesignationEmployee = "Employee"
	DesignationIntern   = "Intern"
	DesignationStaff    = "Staff"
)

var directorRoles = map[Role]struct{}{
	RoleGlobalHRDirector:            {},
	RoleGlobalOperationsDirector:    {},
	RoleEngineeringDirector:         {},
	RoleDirectorTechTeam:            {},
	RoleDirectorBusinessDevelopment: {},
}

var managerRoles = map[Role]struct{}{
	RoleTalentAcquisitionManager:   {},
	RoleProjectTechManager:         {},
	RoleQualityAssuranceManager:    {},
	RoleSoftwareDevelopmentManager: {},
	RoleSystemsIntegrationManager:  {},
	RoleClientRelationsManager:     {},
}

// roleCatalog lists every known role in display order.
var roleCatalog = []Role{
	RoleGlobalHRDirector,
	RoleGlobalOperationsDirector,
	RoleEngineeringDirector,
	RoleDirectorTechTeam,
	RoleDirectorBusinessDevelopment,
	RoleTalentAcquisitionManager,
	RoleProjectTechManager,
	RoleQualityAssuranceManager,
	RoleSoftwareDevelopmentManager,
	RoleSystemsIntegrationManager,
	RoleClientRelationsManager,
	RoleTeamLead,
	RoleEmployee,
	RoleIntern,
}

var roleDisplayNames = map[Role]string{
	RoleGlobalHRDirector:            "Global HR Director",
	RoleGlobalOperationsDirector:    "Global Operations Director",
	RoleEngineeringDirector:         "Engineering Director",
	RoleDirectorTechTeam:            "Director – Tech Team",
	RoleDirectorBusinessDevelopment: "Director – Business Development",
	RoleTalentAcquisitionManager:    "Talent Acquisition Manager",
	RoleProjectTechManager:          "Project/Tech Manager",
	RoleQualityAssuranceManager:     "Quality Assurance Manager",
	RoleSoftwareDevelopmentManager:  "Software Development Manager",
	RoleSystemsIntegrationManager:   "Systems Integration Manager",
	RoleClientRelationsManager:      "Client Relations Manager",
	RoleTeamLead:                    "Team Lead",
	RoleEmployee:                    "Employee",
	RoleIntern:                      "Intern",
}

// IsDirector reports whether role is one of the director-class literals.
func IsDirector(role Role) bool {
	_, ok := directorRoles[role]
	return ok
}

// IsManager reports whether role is one of the manager-class literals.
func IsManager(role Role) bool {
	_, ok := managerRoles[role]
	return ok
}

func IsTeamLead(role Role) bool {
	return role == RoleTeamLead
}

func IsEmployee(role Role) bool {
	return role == RoleEmployee
}

func IsIntern(role Role) bool {
	return role == RoleIntern
}

// RoleClassOf returns the class a role belongs to, or ClassNone for an absent
// or unrecognized role. Interns share the employee class.
func RoleClassOf(role Role) RoleClass {
	switch {
	case IsDirector(role):
		return ClassDirector
	case IsManager(role):
		return ClassManager
	case IsTeamLead(role):
		return ClassTeamLead
	case IsEmployee(role), IsIntern(role):
		return ClassEmployee
	default:
		return ClassNone
	}
}

// RoleDisplayName returns the label for role. Unmapped roles are returned
// verbatim and an absent role reads "Unknown".
func RoleDisplayName(role Role) string {
	if role == "" {
		return "Unknown"
	}
	if name, ok := roleDisplayNames[role]; ok {
		return name
	}
	return string(role)
}

// SimpleDesignation collapses a role into a short designation.
func SimpleDesignation(role Role) string {
	switch {
	case role == "":
		return DesignationStaff
	case IsDirector(role):
		return DesignationDirector
	case IsManager(role):
		return DesignationManager
	case IsTeamLead(role):
		return DesignationTeamLead
	case IsEmployee(role):
		return DesignationEmployee
	case IsIntern(role):
		return DesignationIntern
	default:
		return DesignationStaff
	}
}

// Roles returns the known roles in display order.
func Roles() []Role {
	out := make([]Role, len(roleCatalog))
	copy(out, roleCatalog)
	return out
}

// IsValid checks if role is one of the known literals
func (r Role) IsValid() bool {
	return RoleClassOf(r) != ClassNone
}
