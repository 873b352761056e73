package service

import "hydraulic_dashboard/internal/models"

// Permission names checked by the API layer.
const (
	PermControlSimulation = "control_simulation"
	PermInjectFaults      = "inject_faults"
	PermTrainModel        = "train_model"
	PermViewLogs          = "view_logs"
	PermManageMaintenance = "manage_maintenance"
	PermExportData        = "export_data"
)

// rolePermissions is the static role → permission table. Viewers are
// read-only; only admin and operator may inject faults.
var rolePermissions = map[string][]string{
	models.RoleAdmin: {
		PermControlSimulation, PermInjectFaults, PermTrainModel,
		PermViewLogs, PermManageMaintenance, PermExportData,
	},
	models.RoleOperator: {
		PermControlSimulation, PermInjectFaults, PermTrainModel,
		PermViewLogs, PermManageMaintenance, PermExportData,
	},
	models.RoleViewer: {
		PermViewLogs, PermExportData,
	},
}

// PermissionsForRole returns the static permission list for a role.
func PermissionsForRole(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission is a static membership check, no server round trip.
func HasPermission(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
