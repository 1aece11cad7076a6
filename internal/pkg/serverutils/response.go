package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse flags a response body as successful. The remaining keys are
// endpoint specific (note, notes, notebook, ...).
func SuccessResponse(body fiber.Map) fiber.Map {
	if body == nil {
		body = fiber.Map{}
	}
	body["success"] = true
	return body
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"error":   message,
	}
}
