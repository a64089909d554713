package domain

import "github.com/google/uuid"

// Actor is the authenticated caller of a mutation, tagged by role.
// PartyID is the id of the role-specific row (restaurant, organization, or
// volunteer); branching on Role must be exhaustive, there is no base-class
// downcasting anywhere in this codebase.
type Actor struct {
	UserID  uuid.UUID
	Role    Role
	PartyID uuid.UUID
}

// Is reports whether the actor carries the given role.
func (a Actor) Is(r Role) bool { return a.Role == r }
