package models

import "time"

// Achievement is a badge granted by system logic (course completion, streaks);
// records are never mutated after creation.
type Achievement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"not null;size:500"`
	Icon        string    `json:"icon" gorm:"not null;size:50"`
	Color       string    `json:"color" gorm:"not null;default:'yellow';size:20"`
	EarnedAt    time.Time `json:"earnedAt" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
