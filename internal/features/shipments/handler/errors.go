package handler

import (
	"errors"
	"strings"

	"clearance-tracker/internal/core/logger"
	"clearance-tracker/internal/core/server"
	"clearance-tracker/internal/features/shipments/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the shared error body, named here for the API docs.
type ErrorResponse = server.ErrorBody

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   server.RayID(c),
	})
}

// respondDomainError maps a service error onto its HTTP status.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return respondError(c, fiber.StatusUnprocessableEntity, detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "shipment not found")
	case errors.Is(err, domain.ErrConflict):
		return respondError(c, fiber.StatusConflict, detail(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrBusy):
		return respondError(c, fiber.StatusServiceUnavailable, "shipment is busy, retry later")
	}

	logger.Get().Error("Request failed",
		zap.String("path", c.Path()),
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return respondError(c, fiber.StatusInternalServerError, "internal server error")
}

// detail trims the service's wrapping context so the message starts at the sentinel.
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}
