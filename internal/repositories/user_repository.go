package repositories

import (
	"strings"

	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/pkg/errors"
	"github.com/mroshb/debate_arena/pkg/utils"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	if user.PublicID == "" {
		user.PublicID = utils.GenerateRandomID(8)
	}

	result := r.db.Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return errors.New(errors.ErrCodeAlreadyExists, "user already exists")
		}
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create user")
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// UserExists checks if a user exists by email
func (r *UserRepository) UserExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check user existence")
	}
	return count > 0, nil
}

// ListUsers returns all users, passwords excluded by the model's json tag.
func (r *UserRepository) ListUsers() ([]models.User, error) {
	var users []models.User
	result := r.db.Order("created_at ASC").Find(&users)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}

// CompleteOnboarding stores the inferred ideology exactly once.
func (r *UserRepository) CompleteOnboarding(email, ideology string) (*models.User, error) {
	result := r.db.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"onboarding_completed": true,
			"ideology":             ideology,
		})

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to complete onboarding")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}

	return r.GetUserByEmail(email)
}

// AddWins atomically increments a user's win count.
func (r *UserRepository) AddWins(userID uint, amount float64) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_wins", gorm.Expr("total_wins + ?", amount))

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to credit win")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// DeleteUser deletes a user by ID
func (r *UserRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// DeleteAllUsers removes every user record.
func (r *UserRepository) DeleteAllUsers() error {
	result := r.db.Where("1 = 1").Delete(&models.User{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete users")
	}
	return nil
}

// Postgres signals duplicate keys with SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
