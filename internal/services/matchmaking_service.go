package services

import (
	"time"

	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/pkg/errors"
	"github.com/mroshb/debate_arena/pkg/logger"
)

type MatchmakingService struct {
	debates        DebateStore
	users          UserStore
	topics         TopicSource
	activeDuration time.Duration
}

func NewMatchmakingService(debates DebateStore, users UserStore, topics TopicSource, activeDuration time.Duration) *MatchmakingService {
	return &MatchmakingService{
		debates:        debates,
		users:          users,
		topics:         topics,
		activeDuration: activeDuration,
	}
}

// MatchResult is the outcome of a matchmaking request.
type MatchResult struct {
	Matched bool           `json:"matched"`
	Debate  *models.Debate `json:"debate"`
}

// QueueStatus reports whether a user is still waiting for a partner.
type QueueStatus struct {
	InQueue bool           `json:"inQueue"`
	Debate  *models.Debate `json:"debate,omitempty"`
}

// Enter pairs the user with the oldest waiting opponent of a different
// ideology, or enqueues them. Only the single oldest queue entry is
// inspected: first-found, not best-found.
func (s *MatchmakingService) Enter(email string) (*MatchResult, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if !user.OnboardingCompleted || user.Ideology == "" {
		return nil, errors.New(errors.ErrCodeInvalidState, "complete onboarding before entering matchmaking")
	}

	inDebate, err := s.debates.HasOpenDebate(user.ID)
	if err != nil {
		return nil, err
	}
	if inDebate {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "you are already in an active debate or matchmaking queue")
	}

	waiting, err := s.debates.OldestWaiting()
	if err != nil {
		return nil, err
	}

	if waiting != nil && waiting.Initiator.Ideology != user.Ideology {
		topic, err := s.topics.RandomTopic()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		bound, err := s.debates.BindResponder(waiting.ID, user.ID, topic, now, now.Add(s.activeDuration))
		if err != nil {
			return nil, err
		}

		if bound {
			debate, err := s.debates.GetDebateByID(waiting.ID)
			if err != nil {
				return nil, err
			}

			logger.Info("Debate matched",
				"debateId", debate.ID,
				"initiator", debate.Initiator.Email,
				"responder", email,
				"topic", topic)
			return &MatchResult{Matched: true, Debate: debate}, nil
		}
		// Another request bound this entry first; queue the user instead.
	}

	debate, err := s.debates.CreateWaiting(user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User queued for matchmaking", "email", email, "debateId", debate.ID)
	return &MatchResult{Matched: false, Debate: debate}, nil
}

// Status returns the user's own queue entry, if any.
func (s *MatchmakingService) Status(email string) (*QueueStatus, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	debate, err := s.debates.WaitingFor(user.ID)
	if err != nil {
		return nil, err
	}
	if debate == nil {
		return &QueueStatus{InQueue: false}, nil
	}

	return &QueueStatus{InQueue: true, Debate: debate}, nil
}
