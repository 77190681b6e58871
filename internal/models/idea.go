package models

import (
	"time"

	"gorm.io/gorm"
)

type IdeaCategory string

const (
	IdeaProcessImprovement IdeaCategory = "Process Improvement"
	IdeaTechnicalSolution  IdeaCategory = "Technical Solution"
	IdeaTeamCulture        IdeaCategory = "Team Culture"
)

// IdeaCategories lists the valid idea-board categories.
var IdeaCategories = []IdeaCategory{
	IdeaProcessImprovement,
	IdeaTechnicalSolution,
	IdeaTeamCulture,
}

type IdeaStatus string

const (
	IdeaPending     IdeaStatus = "pending"
	IdeaApproved    IdeaStatus = "approved"
	IdeaImplemented IdeaStatus = "implemented"
	IdeaRejected    IdeaStatus = "rejected"
)

type Idea struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null;size:200"`
	Description string       `json:"description" gorm:"not null;type:text"`
	Category    IdeaCategory `json:"category" gorm:"not null;size:50;index"`
	Status      IdeaStatus   `json:"status" gorm:"not null;default:'pending';size:20"`

	AuthorID uint `json:"authorId" gorm:"not null;index"`
	Author   User `json:"-" gorm:"foreignKey:AuthorID"`

	Votes    []IdeaVote    `json:"-" gorm:"foreignKey:IdeaID"`
	Comments []IdeaComment `json:"-" gorm:"foreignKey:IdeaID"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Idea) TableName() string {
	return "ideas"
}

// IdeaVote records one user's vote for an idea. The composite unique index
// enforces the at-most-one-vote invariant.
type IdeaVote struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	IdeaID uint `json:"ideaId" gorm:"not null;uniqueIndex:idx_idea_voter"`
	UserID uint `json:"userId" gorm:"not null;uniqueIndex:idx_idea_voter;index"`

	CreatedAt time.Time `json:"createdAt"`
}

func (IdeaVote) TableName() string {
	return "idea_votes"
}

type IdeaComment struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	IdeaID uint   `json:"ideaId" gorm:"not null;index"`
	UserID uint   `json:"userId" gorm:"not null;index"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Text   string `json:"text" gorm:"not null;type:text"`

	CreatedAt time.Time `json:"createdAt"`
}

func (IdeaComment) TableName() string {
	return "idea_comments"
}
