// Package rbac holds the administrative permission matrix as a pure
// decision function. It knows nothing about identity: callers must reject
// self-targeting before consulting the matrix.
package rbac

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

type Action string

const (
	ActionBlock      Action = "block"
	ActionDelete     Action = "delete"
	ActionChangeRole Action = "changeRole"
)

// matrix represents the permission rules as code. Anything absent is
// denied, which makes the function total: unknown roles and actions all
// fall through to false. Superadmins cannot demote or delete peer
// superadmins; that only happens through a manual out-of-band process.
var matrix = map[Role]map[Role][]Action{
	RoleSuperAdmin: {
		RoleUser:  {ActionBlock, ActionDelete, ActionChangeRole},
		RoleAdmin: {ActionBlock, ActionDelete, ActionChangeRole},
	},
	RoleAdmin: {
		RoleUser: {ActionBlock, ActionDelete, ActionChangeRole},
	},
}

// CanPerform reports whether an actor with the given role may apply action
// to a target with the given role. It is side-effect free and total.
func CanPerform(actor, target Role, action Action) bool {
	for _, a := range matrix[actor][target] {
		if a == action {
			return true
		}
	}
	return false
}

// CanGrantRole wraps CanPerform with the one rule that depends on the new
// value rather than the target: granting superadmin requires the actor to
// be a superadmin. Callers enforce this at the call site as well.
func CanGrantRole(actor, target, newRole Role) bool {
	if newRole == RoleSuperAdmin && actor != RoleSuperAdmin {
		return false
	}
	return CanPerform(actor, target, ActionChangeRole)
}
