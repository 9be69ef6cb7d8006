package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Domain error taxonomy. Services wrap these with context via fmt.Errorf +
// %w; controllers translate them to HTTP with JsonError.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrValidation       = errors.New("validation error")
	ErrDuplicate        = errors.New("duplicate entry")
)

func HTTPStatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidReference):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return fiber.StatusConflict
	default:
		// storage/transaction failures and anything unclassified
		return fiber.StatusInternalServerError
	}
}

// JsonError maps a domain or fiber error onto the standard envelope.
func JsonError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, HTTPStatusOf(err), err.Error())
}
