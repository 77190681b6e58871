package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope published to the event bus for every domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

const (
	eventSource  = "engagement-service"
	eventVersion = "1.0"
)

// Event types
const (
	TypeUserRegistered    = "user.registered"
	TypeCourseCompleted   = "course.completed"
	TypeAchievementEarned = "achievement.earned"
	TypeIdeaCreated       = "idea.created"
)

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type CourseCompletedEvent struct {
	UserID      uint   `json:"user_id"`
	CourseID    uint   `json:"course_id"`
	CourseTitle string `json:"course_title"`
	XPAwarded   int    `json:"xp_awarded"`
}

type AchievementEarnedEvent struct {
	UserID          uint   `json:"user_id"`
	AchievementName string `json:"achievement_name"`
	Description     string `json:"description"`
}

type IdeaCreatedEvent struct {
	IdeaID   uint   `json:"idea_id"`
	AuthorID uint   `json:"author_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
}
