package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Prerequisite").
		First(&course, id).Error
	if err != nil {
		return nil, handleDBError(err, "get course by id")
	}
	return &course, nil
}

// ===== QUERY OPERATIONS =====

func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	var courses []*models.Course

	query := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Preload("Prerequisite").
		Order("created_at DESC")

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}

	if err := query.Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "list courses")
	}
	return courses, nil
}

func (r *courseRepository) TopRatedByCategory(ctx context.Context, category models.CourseCategory) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("rating DESC").
		First(&course).Error
	if err != nil {
		return nil, handleDBError(err, "get top rated course")
	}
	return &course, nil
}

// ===== ENROLLMENT OPERATIONS =====

func (r *courseRepository) GetEnrollment(ctx context.Context, courseID, userID uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&enrollment).Error
	if err != nil {
		return nil, handleDBError(err, "get enrollment")
	}
	return &enrollment, nil
}

func (r *courseRepository) CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return handleDBError(err, "create enrollment")
	}
	return nil
}

func (r *courseRepository) UpdateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	if err := r.db.WithContext(ctx).Save(enrollment).Error; err != nil {
		return handleDBError(err, "update enrollment")
	}
	return nil
}

func (r *courseRepository) ListEnrollmentsByUser(ctx context.Context, userID uint) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&enrollments).Error
	if err != nil {
		return nil, handleDBError(err, "list enrollments by user")
	}
	return enrollments, nil
}

func (r *courseRepository) CountEnrollmentsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count enrollments by user")
	}
	return count, nil
}

func (r *courseRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&models.CourseEnrollment{}).Error
	if err != nil {
		return handleDBError(err, "delete all enrollments")
	}

	err = r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&models.Course{}).Error
	if err != nil {
		return handleDBError(err, "delete all courses")
	}
	return nil
}
