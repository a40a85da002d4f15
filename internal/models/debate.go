package models

import (
	"time"
)

// Debate is a two-user debate session. A row with a nil responder is a
// matchmaking queue entry; binding a responder activates it.
type Debate struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	InitiatorID    uint            `gorm:"not null;index" json:"initiatorId"`
	Initiator      User            `gorm:"foreignKey:InitiatorID;constraint:OnDelete:CASCADE" json:"initiator"`
	ResponderID    *uint           `gorm:"index" json:"responderId"`
	Responder      *User           `gorm:"foreignKey:ResponderID;constraint:OnDelete:CASCADE" json:"responder,omitempty"`
	Topic          *string         `gorm:"type:varchar(500)" json:"topic"`
	Status         string          `gorm:"type:varchar(20);default:'waiting';index" json:"status"`
	Messages       []DebateMessage `gorm:"foreignKey:DebateID" json:"messages"`
	StartTime      time.Time       `gorm:"not null" json:"startTime"`
	EndTime        *time.Time      `gorm:"index" json:"endTime"`
	InitiatorVotes int             `gorm:"default:0;not null" json:"initiatorVotes"`
	ResponderVotes int             `gorm:"default:0;not null" json:"responderVotes"`
	VotingEnded    bool            `gorm:"default:false;not null" json:"votingEnded"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"-"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"-"`
}

// Debate status constants. Status only moves forward.
const (
	DebateStatusWaiting   = "waiting"
	DebateStatusActive    = "active"
	DebateStatusCompleted = "completed"
)

// Vote choices
const (
	VoteChoiceInitiator = "initiator"
	VoteChoiceResponder = "responder"
)

func (Debate) TableName() string {
	return "debates"
}

// IsParticipant reports whether userID holds one of the two slots.
func (d *Debate) IsParticipant(userID uint) bool {
	if d.InitiatorID == userID {
		return true
	}
	return d.ResponderID != nil && *d.ResponderID == userID
}

// Winner returns the participant with the strictly higher vote count,
// or nil on a tie.
func (d *Debate) Winner() *uint {
	if d.InitiatorVotes > d.ResponderVotes {
		id := d.InitiatorID
		return &id
	}
	if d.ResponderVotes > d.InitiatorVotes && d.ResponderID != nil {
		id := *d.ResponderID
		return &id
	}
	return nil
}

// PastEnd reports whether the active window has elapsed, regardless of
// whether any poller has flipped the status yet.
func (d *Debate) PastEnd(now time.Time) bool {
	return d.EndTime != nil && now.After(*d.EndTime)
}

// VotingOpen reports whether a completed debate is still inside its
// public voting window. EndTime anchors the window.
func (d *Debate) VotingOpen(now time.Time, window time.Duration) bool {
	if d.Status != DebateStatusCompleted || d.VotingEnded {
		return false
	}
	if d.EndTime == nil {
		return true
	}
	return now.Before(d.EndTime.Add(window))
}

// DebateMessage is one chat message inside a debate. Append-only,
// insertion order is chronological order.
type DebateMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebateID  uint      `gorm:"not null;index" json:"debateId"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (DebateMessage) TableName() string {
	return "debate_messages"
}

// DebateVote records one spectator vote. The composite unique index is
// what enforces one vote per identity per debate.
type DebateVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DebateID   uint      `gorm:"not null;index:idx_vote_unique,unique" json:"debateId"`
	VoterEmail string    `gorm:"type:varchar(255);not null;index:idx_vote_unique,unique" json:"voterEmail"`
	Choice     string    `gorm:"type:varchar(20);not null" json:"choice"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (DebateVote) TableName() string {
	return "debate_votes"
}

// DebateTopic is one prompt in the topic catalogue.
type DebateTopic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:varchar(500);uniqueIndex;not null" json:"text"`
	Category  string    `gorm:"type:varchar(100)" json:"category,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (DebateTopic) TableName() string {
	return "debate_topics"
}
