package access

import (
	"testing"

	"notestack-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireOwner(t *testing.T) {
	v := NewVerifier()
	owner := uuid.New()

	assert.NoError(t, v.RequireOwner(owner, owner, "access", "note"))

	err := v.RequireOwner(owner, uuid.New(), "update", "note")
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
	assert.EqualError(t, err, "Not authorized to update this note")

	err = v.RequireOwner(uuid.Nil, uuid.Nil, "delete", "notebook")
	assert.EqualError(t, err, "Not authorized to delete this notebook")
}
