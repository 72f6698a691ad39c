// Package authz holds the static role/permission matrix. It is pure
// configuration: lookups never touch I/O and never return an error. An
// unknown role simply has no permissions.
package authz

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

type Permission string

const (
	PermLeavesCreate  Permission = "leaves.create"
	PermLeavesView    Permission = "leaves.view"
	PermLeavesApprove Permission = "leaves.approve"
	PermLeavesDelete  Permission = "leaves.delete"

	PermLeaveTypesView   Permission = "leave-types.view"
	PermLeaveTypesCreate Permission = "leave-types.create"
	PermLeaveTypesUpdate Permission = "leave-types.update"
	PermLeaveTypesDelete Permission = "leave-types.delete"

	PermLeaveBalancesView   Permission = "leave-balances.view"
	PermLeaveBalancesUpdate Permission = "leave-balances.update"

	PermUsersView   Permission = "users.view"
	PermUsersCreate Permission = "users.create"
	PermUsersUpdate Permission = "users.update"
	PermUsersDelete Permission = "users.delete"

	PermReportsView Permission = "reports.view"

	PermSettingsView   Permission = "settings.view"
	PermSettingsUpdate Permission = "settings.update"
)

// Each role's grant list extends the one below it, so the privilege
// ordering employee < manager < hr < admin holds by construction.
var (
	employeeGrants = []Permission{
		PermLeavesCreate,
		PermLeavesView,
		PermLeaveTypesView,
		PermLeaveBalancesView,
	}

	managerGrants = extend(employeeGrants,
		PermLeavesApprove,
		PermUsersView,
		PermReportsView,
	)

	hrGrants = extend(managerGrants,
		PermLeavesDelete,
		PermLeaveTypesCreate,
		PermLeaveTypesUpdate,
		PermLeaveTypesDelete,
		PermLeaveBalancesUpdate,
		PermUsersCreate,
		PermUsersUpdate,
		PermSettingsView,
	)

	adminGrants = extend(hrGrants,
		PermUsersDelete,
		PermSettingsUpdate,
	)
)

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleEmployee: toSet(employeeGrants),
	RoleManager:  toSet(managerGrants),
	RoleHR:       toSet(hrGrants),
	RoleAdmin:    toSet(adminGrants),
}

var roleGrants = map[Role][]Permission{
	RoleEmployee: employeeGrants,
	RoleManager:  managerGrants,
	RoleHR:       hrGrants,
	RoleAdmin:    adminGrants,
}

func extend(base []Permission, extra ...Permission) []Permission {
	out := make([]Permission, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

func toSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether the role is granted the permission.
// Unknown roles and unknown permissions are both denied.
func HasPermission(role Role, perm Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, granted := set[perm]
	return granted
}

// HasAllPermissions is vacuously true for an empty permission list.
func HasAllPermissions(role Role, perms []Permission) bool {
	for _, p := range perms {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// HasAnyPermission is false for an empty permission list.
func HasAnyPermission(role Role, perms []Permission) bool {
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// PermissionsForRole returns a copy of the role's grant list. Callers may
// mutate the result without touching the matrix.
func PermissionsForRole(role Role) []Permission {
	grants, ok := roleGrants[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(grants))
	copy(out, grants)
	return out
}

// ParseRole validates an externally supplied role tag.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Roles lists every known role in ascending privilege order.
func Roles() []Role {
	return []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin}
}
