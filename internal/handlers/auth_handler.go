package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/debate_arena/internal/services"
	"github.com/mroshb/debate_arena/pkg/errors"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    result,
	})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	if err := h.auth.Signup(req.Name, req.Email, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup successful",
	})
}

func (h *AuthHandler) CompleteOnboarding(c *fiber.Ctx) error {
	var req struct {
		Email      string            `json:"email"`
		Onboarding map[string]string `json:"onboarding"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	ideology, score, err := h.auth.CompleteOnboarding(req.Email, req.Onboarding)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":          "Onboarding processed successfully",
		"inferredIdeology": ideology,
		"ideologyScore":    score,
	})
}
