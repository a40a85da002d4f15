package services

import (
	"time"

	"github.com/mroshb/debate_arena/internal/models"
)

// Store interfaces satisfied by the gorm repositories. Services depend
// on these so the lifecycle engine can be exercised without a database.

type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UserExists(email string) (bool, error)
	ListUsers() ([]models.User, error)
	CompleteOnboarding(email, ideology string) (*models.User, error)
	AddWins(userID uint, amount float64) error
	DeleteUser(id uint) error
	DeleteAllUsers() error
}

type DebateStore interface {
	GetDebateByID(id uint) (*models.Debate, error)
	HasOpenDebate(userID uint) (bool, error)
	OldestWaiting() (*models.Debate, error)
	CreateWaiting(initiatorID uint) (*models.Debate, error)
	BindResponder(debateID, responderID uint, topic string, start, end time.Time) (bool, error)
	WaitingFor(userID uint) (*models.Debate, error)
	AppendMessage(message *models.DebateMessage) error
	CompleteDebate(debateID uint) error
	CastVote(debateID uint, voterEmail, choice string) error
	SettleVotes(debateID uint) (*models.Debate, bool, error)
	ListDebates() ([]models.Debate, error)
	ListDebatesForUser(userID uint) ([]models.Debate, error)
	ListOpenForVoting(now time.Time, window time.Duration) ([]models.Debate, error)
	DeleteDebate(id uint) error
}

type TopicSource interface {
	RandomTopic() (string, error)
}
