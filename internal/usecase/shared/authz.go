package shared

import (
	"errors"

	"careserve/internal/domain/user"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("operation not allowed for role")

// Actor is the already-authenticated caller. Session validation happens at
// the boundary; usecases only ever see this pair.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// Decision is a typed authorization result, produced once per operation
// instead of ad hoc role string checks inside handlers.
type Decision struct {
	Actor   Actor
	allowed bool
}

func (d Decision) Allowed() bool {
	return d.allowed
}

// Authorize checks the actor's role against the operation's allowed set.
func Authorize(actor Actor, allowed ...user.Role) (Decision, error) {
	for _, role := range allowed {
		if actor.Role == role {
			return Decision{Actor: actor, allowed: true}, nil
		}
	}
	return Decision{Actor: actor}, ErrForbidden
}
