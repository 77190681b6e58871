package validator

import "github.com/nexus-hub/engagement-service/internal/models"

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the body for PUT /api/user/profile. All fields are
// optional; absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name   *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Role   *string          `json:"role" validate:"omitempty,max=100"`
	Skills *models.SkillSet `json:"skills"`
}

// UpdateProgressRequest is the body for PUT /api/courses/:id/progress.
// Progress is a pointer so an explicit 0 is distinguishable from absent.
type UpdateProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// CreateIdeaRequest is the body for POST /api/ideas.
type CreateIdeaRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Category    string `json:"category" validate:"required,idea_category"`
}

// AddCommentRequest is the body for POST /api/ideas/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}
