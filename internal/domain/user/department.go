package user

const DefaultDepartmentColor = "bg-gray-500"

var departmentColors = map[string]string{
	"hr":                   "bg-blue-500",
	"operations":           "bg-green-500",
	"engineering":          "bg-purple-500",
	"tech":                 "bg-orange-500",
	"business_development": "bg-pink-500",
	"quality_assurance":    "bg-yellow-500",
	"systems_integration":  "bg-indigo-500",
	"client_relations":     "bg-red-500",
}

// DepartmentColor returns the badge color token for a department.
func DepartmentColor(department string) string {
	if color, ok := departmentColors[department]; ok {
		return color
	}
	return DefaultDepartmentColor
}
