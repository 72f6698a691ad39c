package leave

import (
	"leavedesk/internal/authz"

	"gorm.io/gorm"
)

// visibleTo restricts a leave query to what the actor may see: employees
// see their own requests, managers additionally see their direct reports,
// hr and admin see everything. Applied on every read path so route code
// cannot forget it.
func visibleTo(actor Actor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch actor.Role {
		case authz.RoleHR, authz.RoleAdmin:
			return db
		case authz.RoleManager:
			return db.Where(
				"requester_id = ? OR requester_id IN (SELECT id FROM employees WHERE manager_id = ? AND deleted_at IS NULL)",
				actor.EmployeeID, actor.EmployeeID,
			)
		default:
			return db.Where("requester_id = ?", actor.EmployeeID)
		}
	}
}
