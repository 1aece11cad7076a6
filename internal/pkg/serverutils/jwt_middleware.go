package serverutils

import (
	"strings"

	"notestack-be/internal/pkg/apperror"
	"notestack-be/pkg/credential"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIdLocal           = "user_id"
	unauthenticatedReason = "Please authenticate using a valid token"
)

// NewJwtMiddleware rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header. Missing and invalid tokens are
// reported the same way.
func NewJwtMiddleware(issuer *credential.TokenIssuer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr, ok := BearerToken(ctx.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperror.Unauthenticated(unauthenticatedReason)
		}

		userId, err := issuer.Verify(tokenStr)
		if err != nil {
			return apperror.Unauthenticated(unauthenticatedReason)
		}

		ctx.Locals(userIdLocal, userId)
		return ctx.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

// GetUserId returns the identity stored by the JWT middleware.
func GetUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(userIdLocal).(uuid.UUID)
	if !ok || userId == uuid.Nil {
		return uuid.Nil, apperror.Unauthenticated(unauthenticatedReason)
	}
	return userId, nil
}
