package services

import (
	"time"

	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/internal/security"
	"github.com/mroshb/debate_arena/internal/toxicity"
	"github.com/mroshb/debate_arena/pkg/errors"
	"github.com/mroshb/debate_arena/pkg/logger"
)

// MessageRejectedError carries the classifier sub-scores back to the
// author so the client can explain the rejection.
type MessageRejectedError struct {
	Scores map[string]float64
}

func (e *MessageRejectedError) Error() string {
	return "your message was flagged as inappropriate, please revise and try again"
}

// TallyResult is the outcome of the one-time vote tally.
type TallyResult struct {
	WinnerID       *uint  `json:"winnerId"`
	WinnerName     string `json:"winnerName,omitempty"`
	Tie            bool   `json:"tie"`
	InitiatorVotes int    `json:"initiatorVotes"`
	ResponderVotes int    `json:"responderVotes"`
	AlreadyTallied bool   `json:"alreadyTallied"`
}

type DebateService struct {
	debates      DebateStore
	users        UserStore
	classifier   toxicity.Classifier
	votingWindow time.Duration
}

func NewDebateService(debates DebateStore, users UserStore, classifier toxicity.Classifier, votingWindow time.Duration) *DebateService {
	return &DebateService{
		debates:      debates,
		users:        users,
		classifier:   classifier,
		votingWindow: votingWindow,
	}
}

// PostMessage admits one chat message: author must hold a slot, the
// debate must still be open, and the text must pass toxicity screening.
// Classifier outages fail open so a third-party outage never stalls a
// debate.
func (s *DebateService) PostMessage(debateID uint, email, text string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}

	debate, err := s.debates.GetDebateByID(debateID)
	if err != nil {
		return err
	}

	if !debate.IsParticipant(user.ID) {
		return errors.New(errors.ErrCodeForbidden, "you are not a participant in this debate")
	}

	if debate.Status == models.DebateStatusCompleted {
		return errors.New(errors.ErrCodeInvalidState, "this debate has ended")
	}

	// Clients drive the active->completed transition; do not trust them
	// to have flipped the status on time.
	if debate.Status == models.DebateStatusActive && debate.PastEnd(time.Now()) {
		return errors.New(errors.ErrCodeInvalidState, "this debate has ended")
	}

	text = security.SanitizeString(security.SanitizeHTML(text))
	if text == "" {
		return errors.New(errors.ErrCodeValidation, "message is empty")
	}

	result, err := s.classifier.Check(text)
	if err != nil {
		// Fail open: admit the message rather than blocking the debate
		// on a classifier outage.
		logger.Warn("Toxicity check unavailable, admitting message", "debateId", debateID, "error", err)
	} else if result.Toxic {
		logger.Info("Message rejected by toxicity screen", "debateId", debateID, "author", email)
		return &MessageRejectedError{Scores: result.Scores}
	}

	return s.debates.AppendMessage(&models.DebateMessage{
		DebateID: debateID,
		AuthorID: user.ID,
		Content:  text,
	})
}

// Complete flips an active debate to completed. The call is
// client-driven; completing anything but an active debate is a
// conflict, never a silent no-op.
func (s *DebateService) Complete(debateID uint) (*models.Debate, error) {
	if err := s.debates.CompleteDebate(debateID); err != nil {
		return nil, err
	}

	logger.Info("Debate completed", "debateId", debateID)
	return s.debates.GetDebateByID(debateID)
}

// CastVote records one spectator vote on a completed debate. One vote
// per identity; repeat votes are rejected, not switched.
func (s *DebateService) CastVote(debateID uint, voterEmail, choice string) error {
	if choice != models.VoteChoiceInitiator && choice != models.VoteChoiceResponder {
		return errors.New(errors.ErrCodeValidation, "vote must be for the initiator or the responder")
	}

	debate, err := s.debates.GetDebateByID(debateID)
	if err != nil {
		return err
	}

	if debate.Status != models.DebateStatusCompleted {
		return errors.New(errors.ErrCodeInvalidState, "debate is still in progress")
	}

	if debate.VotingEnded {
		return errors.New(errors.ErrCodeInvalidState, "voting has ended for this debate")
	}

	if err := s.debates.CastVote(debateID, voterEmail, choice); err != nil {
		return err
	}

	logger.Info("Vote recorded", "debateId", debateID, "choice", choice)
	return nil
}

// Tally computes the winner and credits the +0.5 win, at most once per
// debate no matter how many pollers race here. Repeat calls return the
// settled result without re-crediting.
func (s *DebateService) Tally(debateID uint) (*TallyResult, error) {
	debate, err := s.debates.GetDebateByID(debateID)
	if err != nil {
		return nil, err
	}

	if debate.Status != models.DebateStatusCompleted {
		return nil, errors.New(errors.ErrCodeInvalidState, "only completed debates can have votes tallied")
	}

	settled, claimed, err := s.debates.SettleVotes(debateID)
	if err != nil {
		return nil, err
	}

	winnerID := settled.Winner()
	result := &TallyResult{
		WinnerID:       winnerID,
		Tie:            winnerID == nil,
		InitiatorVotes: settled.InitiatorVotes,
		ResponderVotes: settled.ResponderVotes,
		AlreadyTallied: !claimed,
	}

	if winnerID != nil {
		if *winnerID == settled.InitiatorID {
			result.WinnerName = settled.Initiator.Name
		} else if settled.Responder != nil {
			result.WinnerName = settled.Responder.Name
		}
	}

	if claimed {
		logger.Info("Votes tallied",
			"debateId", debateID,
			"initiatorVotes", result.InitiatorVotes,
			"responderVotes", result.ResponderVotes,
			"tie", result.Tie)
	}

	return result, nil
}

// GetDebate returns one debate with participants and messages.
func (s *DebateService) GetDebate(debateID uint) (*models.Debate, error) {
	return s.debates.GetDebateByID(debateID)
}

// ListDebates returns every debate.
func (s *DebateService) ListDebates() ([]models.Debate, error) {
	return s.debates.ListDebates()
}

// ListDebatesForUser returns the debates a user participates in.
func (s *DebateService) ListDebatesForUser(email string) ([]models.Debate, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.debates.ListDebatesForUser(user.ID)
}

// ListOpenForVoting returns completed debates still inside the public
// voting window.
func (s *DebateService) ListOpenForVoting() ([]models.Debate, error) {
	return s.debates.ListOpenForVoting(time.Now(), s.votingWindow)
}

// Delete removes a debate permanently.
func (s *DebateService) Delete(debateID uint) error {
	if err := s.debates.DeleteDebate(debateID); err != nil {
		return err
	}
	logger.Info("Debate deleted", "debateId", debateID)
	return nil
}
