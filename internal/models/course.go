package models

import (
	"time"

	"gorm.io/gorm"
)

type CourseCategory string

const (
	CategoryTechnical  CourseCategory = "Technical"
	CategorySoftSkills CourseCategory = "Soft Skills"
	CategoryLeadership CourseCategory = "Leadership"
)

// CourseCategories lists the valid catalog categories in display order.
var CourseCategories = []CourseCategory{
	CategoryTechnical,
	CategorySoftSkills,
	CategoryLeadership,
}

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:200;index"`
	Description string         `json:"description" gorm:"not null;type:text"`
	Category    CourseCategory `json:"category" gorm:"not null;size:50;index"`
	Duration    string         `json:"duration" gorm:"not null;size:50"`
	Rating      float64        `json:"rating" gorm:"not null;default:4.5"`

	// Presentation hints for the catalog cards
	Thumbnail *string `json:"thumbnail" gorm:"size:500"`
	Gradient  string  `json:"gradient" gorm:"size:100;default:'from-indigo-500 to-blue-600'"`
	Icon      string  `json:"icon" gorm:"size:50;default:'brain-circuit'"`

	IsLocked       bool    `json:"isLocked" gorm:"not null;default:false"`
	PrerequisiteID *uint   `json:"prerequisiteId"`
	Prerequisite   *Course `json:"prerequisite,omitempty" gorm:"foreignKey:PrerequisiteID"`

	Enrollments []CourseEnrollment `json:"-" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseEnrollment is one user's progress marker in a course. The composite
// unique index guarantees a user enrolls at most once per course.
type CourseEnrollment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	CourseID uint `json:"courseId" gorm:"not null;uniqueIndex:idx_course_user"`
	UserID   uint `json:"userId" gorm:"not null;uniqueIndex:idx_course_user;index"`

	Progress  int        `json:"progress" gorm:"not null;default:0"`
	StartedAt time.Time  `json:"startedAt"`
	// CompletedAt marks the single completion award; it never resets.
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
