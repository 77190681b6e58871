package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/repositories"
)

// mockRepository is an in-memory Repository implementation for service tests.
type mockRepository struct {
	users        *mockUserRepo
	courses      *mockCourseRepo
	ideas        *mockIdeaRepo
	achievements *mockAchievementRepo
	chat         *mockChatRepo
}

func newMockRepository() *mockRepository {
	users := &mockUserRepo{users: map[uint]*models.User{}}
	return &mockRepository{
		users:        users,
		courses:      &mockCourseRepo{courses: map[uint]*models.Course{}},
		ideas:        &mockIdeaRepo{ideas: map[uint]*models.Idea{}, users: users},
		achievements: &mockAchievementRepo{},
		chat:         &mockChatRepo{},
	}
}

func (m *mockRepository) User() repositories.UserRepository               { return m.users }
func (m *mockRepository) Course() repositories.CourseRepository           { return m.courses }
func (m *mockRepository) Idea() repositories.IdeaRepository               { return m.ideas }
func (m *mockRepository) Achievement() repositories.AchievementRepository { return m.achievements }
func (m *mockRepository) Chat() repositories.ChatRepository               { return m.chat }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) AddXP(ctx context.Context, id uint, amount int) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.XP += amount
	return nil
}

func (m *mockUserRepo) DeleteAll(ctx context.Context) error {
	m.users = map[uint]*models.User{}
	return nil
}

// ===== COURSES =====

type mockCourseRepo struct {
	courses     map[uint]*models.Course
	enrollments []*models.CourseEnrollment
	nextID      uint
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	m.nextID++
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range m.courses {
		if filters.Category != nil && c.Category != *filters.Category {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockCourseRepo) TopRatedByCategory(ctx context.Context, category models.CourseCategory) (*models.Course, error) {
	var best *models.Course
	for _, c := range m.courses {
		if c.Category != category {
			continue
		}
		if best == nil || c.Rating > best.Rating {
			best = c
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (m *mockCourseRepo) GetEnrollment(ctx context.Context, courseID, userID uint) (*models.CourseEnrollment, error) {
	for _, e := range m.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	for _, e := range m.enrollments {
		if e.CourseID == enrollment.CourseID && e.UserID == enrollment.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	enrollment.ID = uint(len(m.enrollments) + 1)
	m.enrollments = append(m.enrollments, enrollment)
	return nil
}

func (m *mockCourseRepo) UpdateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	for i, e := range m.enrollments {
		if e.ID == enrollment.ID {
			m.enrollments[i] = enrollment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListEnrollmentsByUser(ctx context.Context, userID uint) ([]*models.CourseEnrollment, error) {
	var out []*models.CourseEnrollment
	for _, e := range m.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) CountEnrollmentsByUser(ctx context.Context, userID uint) (int64, error) {
	list, _ := m.ListEnrollmentsByUser(ctx, userID)
	return int64(len(list)), nil
}

func (m *mockCourseRepo) DeleteAll(ctx context.Context) error {
	m.courses = map[uint]*models.Course{}
	m.enrollments = nil
	return nil
}

// ===== IDEAS =====

type mockIdeaRepo struct {
	ideas    map[uint]*models.Idea
	comments []*models.IdeaComment
	users    *mockUserRepo
	nextID   uint
}

func (m *mockIdeaRepo) Create(ctx context.Context, idea *models.Idea) error {
	m.nextID++
	idea.ID = m.nextID
	idea.CreatedAt = time.Now()
	if m.users != nil {
		if author, ok := m.users.users[idea.AuthorID]; ok {
			idea.Author = *author
		}
	}
	m.ideas[idea.ID] = idea
	return nil
}

func (m *mockIdeaRepo) GetByID(ctx context.Context, id uint) (*models.Idea, error) {
	if i, ok := m.ideas[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIdeaRepo) List(ctx context.Context, filters repositories.IdeaFilters) ([]*models.Idea, error) {
	var out []*models.Idea
	for _, i := range m.ideas {
		if filters.Category != nil && i.Category != *filters.Category {
			continue
		}
		if filters.AuthorID != nil && i.AuthorID != *filters.AuthorID {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockIdeaRepo) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	for _, i := range m.ideas {
		if i.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *mockIdeaRepo) AddVote(ctx context.Context, ideaID, userID uint) error {
	idea, ok := m.ideas[ideaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, v := range idea.Votes {
		if v.UserID == userID {
			return nil
		}
	}
	idea.Votes = append(idea.Votes, models.IdeaVote{IdeaID: ideaID, UserID: userID})
	return nil
}

func (m *mockIdeaRepo) RemoveVote(ctx context.Context, ideaID, userID uint) error {
	idea, ok := m.ideas[ideaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	votes := idea.Votes[:0]
	for _, v := range idea.Votes {
		if v.UserID != userID {
			votes = append(votes, v)
		}
	}
	idea.Votes = votes
	return nil
}

func (m *mockIdeaRepo) HasVoted(ctx context.Context, ideaID, userID uint) (bool, error) {
	idea, ok := m.ideas[ideaID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	for _, v := range idea.Votes {
		if v.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockIdeaRepo) CountVotes(ctx context.Context, ideaID uint) (int64, error) {
	idea, ok := m.ideas[ideaID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return int64(len(idea.Votes)), nil
}

func (m *mockIdeaRepo) AddComment(ctx context.Context, comment *models.IdeaComment) error {
	idea, ok := m.ideas[comment.IdeaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	comment.ID = uint(len(m.comments) + 1)
	comment.CreatedAt = time.Now()
	if m.users != nil {
		if u, ok := m.users.users[comment.UserID]; ok {
			comment.User = *u
		}
	}
	m.comments = append(m.comments, comment)
	idea.Comments = append(idea.Comments, *comment)
	return nil
}

func (m *mockIdeaRepo) GetComments(ctx context.Context, ideaID uint) ([]*models.IdeaComment, error) {
	var out []*models.IdeaComment
	for _, c := range m.comments {
		if c.IdeaID == ideaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockIdeaRepo) DeleteAll(ctx context.Context) error {
	m.ideas = map[uint]*models.Idea{}
	m.comments = nil
	return nil
}

// ===== ACHIEVEMENTS =====

type mockAchievementRepo struct {
	achievements []*models.Achievement
}

func (m *mockAchievementRepo) Create(ctx context.Context, achievement *models.Achievement) error {
	achievement.ID = uint(len(m.achievements) + 1)
	m.achievements = append(m.achievements, achievement)
	return nil
}

func (m *mockAchievementRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	var out []*models.Achievement
	for _, a := range m.achievements {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	return out, nil
}

func (m *mockAchievementRepo) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.Achievement, error) {
	out, _ := m.ListByUser(ctx, userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAchievementRepo) DeleteAll(ctx context.Context) error {
	m.achievements = nil
	return nil
}

// ===== CHAT =====

type mockChatRepo struct {
	messages []*models.ChatMessage
}

func (m *mockChatRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	message.ID = uint(len(m.messages) + 1)
	message.CreatedAt = time.Now()
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockChatRepo) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].UserID == userID {
			out = append(out, m.messages[i])
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
