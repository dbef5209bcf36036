package guard

import (
	"github.com/thehaffk/WorkoutTracker/internal/types"
)

// Actor is the authenticated user a request is evaluated against. Handlers
// build it from the session context and pass it explicitly; the guard never
// reads ambient state.
type Actor struct {
	ID   uint
	Role types.Role
}

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Target describes the entity an action applies to. OwnerID is nil for
// system-public entities that have no owning user.
type Target struct {
	OwnerID *uint
	Public  bool
}

func OwnedBy(ownerID uint) Target {
	return Target{OwnerID: &ownerID}
}

// Authorize reports whether the actor may perform the action on the target.
// It is a pure predicate: callers must short-circuit the operation and produce
// their own denial response when it returns false.
//
// Reads are allowed on public targets and on the actor's own entities.
// Creation requires the editor or admin role. Updates and deletes require
// ownership, which admins bypass.
func Authorize(actor Actor, action Action, target Target) bool {
	if !actor.Role.Valid() {
		return false
	}

	switch action {
	case ActionRead:
		return target.Public || isOwner(actor, target) || actor.Role.IsAdmin()
	case ActionCreate:
		return actor.Role.CanEdit()
	case ActionUpdate, ActionDelete:
		return isOwner(actor, target) || actor.Role.IsAdmin()
	}

	return false
}

func isOwner(actor Actor, target Target) bool {
	return target.OwnerID != nil && *target.OwnerID == actor.ID
}
