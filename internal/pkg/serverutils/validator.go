package serverutils

import (
	"strings"

	"notestack-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs the struct's validate tags. Any failure is reported
// with the single client-facing message.
func ValidateRequest(req interface{}, message string) error {
	if err := validate.Struct(req); err != nil {
		return apperror.Validation(message)
	}
	return nil
}

// ParseBody decodes the JSON body. A body that cannot be decoded is treated
// the same as a body missing its required fields.
func ParseBody(ctx *fiber.Ctx, out interface{}, message string) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation(message)
	}
	return nil
}

// ParseID reads a UUID route parameter.
func ParseID(ctx *fiber.Ctx, param, message string) (uuid.UUID, error) {
	return ParseUUID(ctx.Params(param), message)
}

func ParseUUID(raw, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation(message)
	}
	return id, nil
}
