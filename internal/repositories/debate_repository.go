package repositories

import (
	"time"

	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/pkg/errors"
	"gorm.io/gorm"
)

type DebateRepository struct {
	db *gorm.DB
}

func NewDebateRepository(db *gorm.DB) *DebateRepository {
	return &DebateRepository{db: db}
}

func (r *DebateRepository) preload() *gorm.DB {
	return r.db.
		Preload("Initiator").
		Preload("Responder").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("debate_messages.created_at ASC, debate_messages.id ASC")
		})
}

// GetDebateByID retrieves a debate with participants and messages.
func (r *DebateRepository) GetDebateByID(id uint) (*models.Debate, error) {
	var debate models.Debate
	result := r.preload().First(&debate, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "debate not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get debate")
	}

	return &debate, nil
}

// HasOpenDebate checks whether the user already occupies a slot in any
// waiting or active debate.
func (r *DebateRepository) HasOpenDebate(userID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.Debate{}).
		Where("(initiator_id = ? OR responder_id = ?) AND status IN (?, ?)",
			userID, userID, models.DebateStatusWaiting, models.DebateStatusActive).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check open debates")
	}
	return count > 0, nil
}

// OldestWaiting returns the first unmatched queue entry (FIFO), or nil
// when the queue is empty. Only this single record is inspected by
// matchmaking; the rule is first-found, not best-found.
func (r *DebateRepository) OldestWaiting() (*models.Debate, error) {
	var debate models.Debate
	result := r.db.
		Preload("Initiator").
		Where("status = ? AND responder_id IS NULL", models.DebateStatusWaiting).
		Order("created_at ASC").
		First(&debate)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to scan queue")
	}

	return &debate, nil
}

// CreateWaiting adds a new queue entry with the user as initiator.
func (r *DebateRepository) CreateWaiting(initiatorID uint) (*models.Debate, error) {
	debate := &models.Debate{
		InitiatorID: initiatorID,
		Status:      models.DebateStatusWaiting,
		StartTime:   time.Now(),
	}

	if err := r.db.Create(debate).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to enter queue")
	}

	return r.GetDebateByID(debate.ID)
}

// BindResponder claims a waiting debate for the responder. The update
// is conditioned on the responder slot still being empty, so two
// simultaneous matchmaking requests cannot both bind; the loser sees
// ok=false and falls back to queueing.
func (r *DebateRepository) BindResponder(debateID, responderID uint, topic string, start, end time.Time) (bool, error) {
	result := r.db.Model(&models.Debate{}).
		Where("id = ? AND responder_id IS NULL AND status = ?", debateID, models.DebateStatusWaiting).
		Updates(map[string]interface{}{
			"responder_id": responderID,
			"status":       models.DebateStatusActive,
			"topic":        topic,
			"start_time":   start,
			"end_time":     end,
		})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to bind responder")
	}

	return result.RowsAffected == 1, nil
}

// WaitingFor returns the user's own queue entry, or nil.
func (r *DebateRepository) WaitingFor(userID uint) (*models.Debate, error) {
	var debate models.Debate
	result := r.preload().
		Where("initiator_id = ? AND status = ?", userID, models.DebateStatusWaiting).
		First(&debate)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check queue entry")
	}

	return &debate, nil
}

// AppendMessage appends a chat message to a debate.
func (r *DebateRepository) AppendMessage(message *models.DebateMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to append message")
	}
	return nil
}

// CompleteDebate flips active -> completed. Conditioned on the current
// status, so late or repeated completion calls surface as a conflict
// instead of rewinding the state machine.
func (r *DebateRepository) CompleteDebate(debateID uint) error {
	result := r.db.Model(&models.Debate{}).
		Where("id = ? AND status = ?", debateID, models.DebateStatusActive).
		Update("status", models.DebateStatusCompleted)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to complete debate")
	}
	if result.RowsAffected == 0 {
		// Distinguish unknown debate from wrong state
		var count int64
		r.db.Model(&models.Debate{}).Where("id = ?", debateID).Count(&count)
		if count == 0 {
			return errors.New(errors.ErrCodeNotFound, "debate not found")
		}
		return errors.New(errors.ErrCodeInvalidState, "only active debates can be completed")
	}

	return nil
}

// CastVote records one spectator vote. The vote row insert and the
// counter increment run in one transaction, and the composite unique
// index on (debate_id, voter_email) turns a repeat vote into a
// conflict. This keeps initiator_votes + responder_votes equal to the
// number of voter rows.
func (r *DebateRepository) CastVote(debateID uint, voterEmail, choice string) error {
	column := "initiator_votes"
	if choice == models.VoteChoiceResponder {
		column = "responder_votes"
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		vote := &models.DebateVote{
			DebateID:   debateID,
			VoterEmail: voterEmail,
			Choice:     choice,
		}

		if err := tx.Create(vote).Error; err != nil {
			if isUniqueViolation(err) {
				return errors.New(errors.ErrCodeAlreadyExists, "you have already voted on this debate")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record vote")
		}

		result := tx.Model(&models.Debate{}).
			Where("id = ?", debateID).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count vote")
		}

		return nil
	})

	return err
}

// SettleVotes performs the one-time tally. The voting_ended flip is a
// conditional update, and the +0.5 win credit happens in the same
// transaction, so racing pollers credit the winner at most once.
// Returns the debate as settled plus whether this call did the settling.
func (r *DebateRepository) SettleVotes(debateID uint) (*models.Debate, bool, error) {
	var settled models.Debate
	claimed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Debate{}).
			Where("id = ? AND voting_ended = ?", debateID, false).
			Update("voting_ended", true)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to end voting")
		}
		claimed = result.RowsAffected == 1

		if err := tx.Preload("Initiator").Preload("Responder").First(&settled, debateID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "debate not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load debate")
		}

		if !claimed {
			return nil
		}

		winnerID := settled.Winner()
		if winnerID == nil {
			return nil
		}

		credit := tx.Model(&models.User{}).
			Where("id = ?", *winnerID).
			UpdateColumn("total_wins", gorm.Expr("total_wins + ?", 0.5))
		if credit.Error != nil {
			return errors.Wrap(credit.Error, errors.ErrCodeInternalError, "failed to credit win")
		}

		return nil
	})

	if err != nil {
		return nil, false, err
	}

	return &settled, claimed, nil
}

// ListDebates returns all debates with participants populated.
func (r *DebateRepository) ListDebates() ([]models.Debate, error) {
	var debates []models.Debate
	result := r.preload().Order("created_at DESC").Find(&debates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list debates")
	}
	return debates, nil
}

// ListDebatesForUser returns every debate the user participates in.
func (r *DebateRepository) ListDebatesForUser(userID uint) ([]models.Debate, error) {
	var debates []models.Debate
	result := r.preload().
		Where("initiator_id = ? OR responder_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&debates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list user debates")
	}
	return debates, nil
}

// ListOpenForVoting returns completed debates still inside their public
// voting window, newest first.
func (r *DebateRepository) ListOpenForVoting(now time.Time, window time.Duration) ([]models.Debate, error) {
	var debates []models.Debate
	result := r.preload().
		Where("status = ? AND voting_ended = ? AND end_time > ?",
			models.DebateStatusCompleted, false, now.Add(-window)).
		Order("end_time DESC").
		Find(&debates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list votable debates")
	}
	return debates, nil
}

// DeleteDebate removes a debate permanently.
func (r *DebateRepository) DeleteDebate(id uint) error {
	result := r.db.Delete(&models.Debate{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete debate")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "debate not found")
	}
	return nil
}
