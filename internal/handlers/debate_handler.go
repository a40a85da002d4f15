package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/internal/services"
	"github.com/mroshb/debate_arena/pkg/errors"
)

type DebateHandler struct {
	debates     *services.DebateService
	matchmaking *services.MatchmakingService
}

func NewDebateHandler(debates *services.DebateService, matchmaking *services.MatchmakingService) *DebateHandler {
	return &DebateHandler{debates: debates, matchmaking: matchmaking}
}

func parseDebateID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, errors.New(errors.ErrCodeValidation, "invalid debate id")
	}
	return uint(id), nil
}

func (h *DebateHandler) ListDebates(c *fiber.Ctx) error {
	debates, err := h.debates.ListDebates()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debates)
}

// ListFeatured returns completed debates still inside their voting window,
// the public feed spectators vote from.
func (h *DebateHandler) ListFeatured(c *fiber.Ctx) error {
	debates, err := h.debates.ListOpenForVoting()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debates)
}

func (h *DebateHandler) ListForUser(c *fiber.Ctx) error {
	debates, err := h.debates.ListDebatesForUser(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debates)
}

func (h *DebateHandler) GetDebate(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	debate, err := h.debates.GetDebate(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debate)
}

func (h *DebateHandler) EnterMatchmaking(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	result, err := h.matchmaking.Enter(req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *DebateHandler) MatchmakingStatus(c *fiber.Ctx) error {
	status, err := h.matchmaking.Status(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

func (h *DebateHandler) PostMessage(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	if err := h.debates.PostMessage(id, req.Email, req.Message); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Message posted"})
}

func (h *DebateHandler) CompleteDebate(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	debate, err := h.debates.Complete(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debate)
}

func (h *DebateHandler) CastVote(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Email    string `json:"email"`
		VotedFor string `json:"votedFor"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
	}

	// Clients may vote by seat number or by role name.
	choice := req.VotedFor
	switch choice {
	case "user1":
		choice = models.VoteChoiceInitiator
	case "user2":
		choice = models.VoteChoiceResponder
	}

	if err := h.debates.CastVote(id, req.Email, choice); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}

func (h *DebateHandler) TallyVotes(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.debates.Tally(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *DebateHandler) DeleteDebate(c *fiber.Ctx) error {
	id, err := parseDebateID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.debates.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Debate deleted"})
}
