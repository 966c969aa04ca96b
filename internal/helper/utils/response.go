package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(ctx *fiber.Ctx, status int, msg string, extra ...fiber.Map) error {
	body := fiber.Map{
		"success": false,
		"error":   msg,
	}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return ctx.Status(status).JSON(body)
}

// ResponseValidation reports per field errors with 422.
func ResponseValidation(ctx *fiber.Ctx, fields map[string]string, extra ...fiber.Map) error {
	body := fiber.Map{"fields": fields}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return ResponseError(ctx, fiber.StatusUnprocessableEntity, "validation failed", body)
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}, extra ...fiber.Map) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return ctx.Status(status).JSON(body)
}
