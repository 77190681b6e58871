package models

import "time"

type ChatIntent string

const (
	IntentTraining ChatIntent = "training"
	IntentIdea     ChatIntent = "idea"
	IntentPolicy   ChatIntent = "policy"
	IntentSupport  ChatIntent = "support"
	IntentGeneral  ChatIntent = "general"
)

// ChatMessage is one exchange with the assistant. Append-only.
type ChatMessage struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	UserID   uint       `json:"userId" gorm:"not null;index"`
	Message  string     `json:"message" gorm:"not null;type:text"`
	Response string     `json:"response" gorm:"not null;type:text"`
	Intent   ChatIntent `json:"intent" gorm:"size:20"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
