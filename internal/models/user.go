package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SkillSet holds the per-area skill sub-scores shown on the profile radar.
type SkillSet struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
	Leadership    int `json:"leadership"`
	Design        int `json:"design"`
}

// DefaultSkillSet returns the skill scores assigned to a fresh account.
func DefaultSkillSet() SkillSet {
	return SkillSet{
		Technical:     85,
		Communication: 62,
		Leadership:    70,
		Design:        55,
	}
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	Role         string `json:"role" gorm:"not null;default:'Senior Developer';size:100"`
	Avatar       string `json:"avatar" gorm:"size:500;default:'https://api.dicebear.com/7.x/avataaars/svg?seed=Felix'"`

	// Gamification
	Level                int            `json:"level" gorm:"not null;default:5"`
	XP                   int            `json:"xp" gorm:"not null;default:1250"`
	ProductivityScore    int            `json:"productivityScore" gorm:"not null;default:94"`
	LearningPathProgress int            `json:"learningPathProgress" gorm:"not null;default:82"`
	Skills               datatypes.JSON `json:"skills" gorm:"type:jsonb"`
	Streak               int            `json:"streak" gorm:"not null;default:12"`

	LastLogin time.Time      `json:"lastLogin"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// SkillSet decodes the stored skills column, falling back to the defaults when
// the column is empty or malformed.
func (u *User) SkillSet() SkillSet {
	skills := DefaultSkillSet()
	if len(u.Skills) > 0 {
		_ = json.Unmarshal(u.Skills, &skills)
	}
	return skills
}

// PublicUser is the client-safe projection of a user; the password hash never
// leaves the model layer.
type PublicUser struct {
	ID                   uint      `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	Avatar               string    `json:"avatar"`
	Level                int       `json:"level"`
	XP                   int       `json:"xp"`
	ProductivityScore    int       `json:"productivityScore"`
	LearningPathProgress int       `json:"learningPathProgress"`
	Skills               SkillSet  `json:"skills"`
	Streak               int       `json:"streak"`
	LastLogin            time.Time `json:"lastLogin"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Role:                 u.Role,
		Avatar:               u.Avatar,
		Level:                u.Level,
		XP:                   u.XP,
		ProductivityScore:    u.ProductivityScore,
		LearningPathProgress: u.LearningPathProgress,
		Skills:               u.SkillSet(),
		Streak:               u.Streak,
		LastLogin:            u.LastLogin,
		CreatedAt:            u.CreatedAt,
	}
}

// AuthorInfo is the minimal identity attached to ideas and comments.
type AuthorInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// Author returns the projection used when the user appears as an idea or
// comment author.
func (u *User) Author() AuthorInfo {
	return AuthorInfo{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}
