package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/debate_arena/internal/services"
	"github.com/mroshb/debate_arena/pkg/errors"
)

type UserHandler struct {
	auth *services.AuthService
}

func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid user id"))
	}

	if err := h.auth.DeleteUser(uint(id)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *UserHandler) DeleteAllUsers(c *fiber.Ctx) error {
	if err := h.auth.DeleteAllUsers(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All users deleted"})
}
