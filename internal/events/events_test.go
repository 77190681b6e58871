package events

import (
	"context"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(TypeCourseCompleted, CourseCompletedEvent{
		UserID:      1,
		CourseID:    2,
		CourseTitle: "AI Tools for Modern Developers",
		XPAwarded:   150,
	})

	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Source != "engagement-service" {
		t.Errorf("Expected source 'engagement-service', got %q", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %q", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should not be zero")
	}
	if event.Type != TypeCourseCompleted {
		t.Errorf("Expected type %q, got %q", TypeCourseCompleted, event.Type)
	}
}

func TestMockEventPublisher(t *testing.T) {
	ctx := context.Background()
	publisher := NewMockEventPublisher(nil)

	if err := publisher.Publish(ctx, NewEvent(TypeUserRegistered, UserRegisteredEvent{UserID: 1})); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(TypeIdeaCreated, IdeaCreatedEvent{IdeaID: 1})); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(published))
	}
	if published[0].Type != TypeUserRegistered || published[1].Type != TypeIdeaCreated {
		t.Errorf("Events recorded out of order: %+v", published)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("Expected no events after clear")
	}
}
