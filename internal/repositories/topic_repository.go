package repositories

import (
	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/pkg/errors"
	"gorm.io/gorm"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// RandomTopic picks one prompt uniformly at random from the catalogue.
func (r *TopicRepository) RandomTopic() (string, error) {
	var topic models.DebateTopic
	result := r.db.Order("RANDOM()").First(&topic)

	if result.Error == gorm.ErrRecordNotFound {
		return "", errors.New(errors.ErrCodeInternalError, "topic catalogue is empty")
	}
	if result.Error != nil {
		return "", errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to pick topic")
	}

	return topic.Text, nil
}

// CountTopics returns the catalogue size.
func (r *TopicRepository) CountTopics() (int64, error) {
	var count int64
	result := r.db.Model(&models.DebateTopic{}).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count topics")
	}
	return count, nil
}

// SeedTopics inserts prompts that are not already present.
func (r *TopicRepository) SeedTopics(texts []string) error {
	for _, text := range texts {
		var existing models.DebateTopic
		err := r.db.Where("text = ?", text).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := r.db.Create(&models.DebateTopic{Text: text}).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to seed topic")
			}
			continue
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check topic")
		}
	}
	return nil
}
