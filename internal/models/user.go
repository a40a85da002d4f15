package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PublicID            string    `gorm:"uniqueIndex;type:varchar(8)" json:"publicId"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Email               string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Password            string    `gorm:"type:varchar(255);not null" json:"-"`
	OnboardingCompleted bool      `gorm:"default:false;not null" json:"onboardingCompleted"`
	Ideology            string    `gorm:"type:varchar(20);index" json:"ideology"`
	TotalWins           float64   `gorm:"default:0;not null" json:"totalWins"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Ideology classifications, derived once from onboarding answers.
// Declaration order matters: the first bucket wins scoring ties.
const (
	IdeologyLiberal      = "Liberal"
	IdeologyModerate     = "Moderate"
	IdeologyConservative = "Conservative"
)

// IdeologyBuckets lists the classifications in tie-break order.
var IdeologyBuckets = []string{IdeologyLiberal, IdeologyModerate, IdeologyConservative}

// ValidIdeology reports whether s is one of the closed ideology set.
func ValidIdeology(s string) bool {
	for _, b := range IdeologyBuckets {
		if s == b {
			return true
		}
	}
	return false
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Ideology is empty until onboarding completes, fixed afterward
	if u.Ideology != "" && !ValidIdeology(u.Ideology) {
		return gorm.ErrInvalidData
	}

	if u.OnboardingCompleted && u.Ideology == "" {
		return gorm.ErrInvalidData
	}

	if u.TotalWins < 0 {
		return gorm.ErrInvalidData
	}

	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
