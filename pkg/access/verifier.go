package access

import (
	"fmt"

	"notestack-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// Verifier is the single ownership predicate applied before every read or
// mutation of a user-owned record.
type Verifier struct{}

func NewVerifier() *Verifier {
	return &Verifier{}
}

// RequireOwner fails with an authorization error when ownerId is not the caller.
// action and resource only shape the message, e.g. "update" + "note".
func (v *Verifier) RequireOwner(ownerId, callerId uuid.UUID, action, resource string) error {
	if ownerId == uuid.Nil || ownerId != callerId {
		return apperror.Unauthorized(fmt.Sprintf("Not authorized to %s this %s", action, resource))
	}
	return nil
}
