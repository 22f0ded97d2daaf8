package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/pkg/logger"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedPassword = "123"

// SeedService 写入开发用示例数据，可重复执行
type SeedService struct {
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	courses    *CourseService
}

func NewSeedService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, courses *CourseService) *SeedService {
	return &SeedService{UserRepo: userRepo, CourseRepo: courseRepo, courses: courses}
}

type seedCourse struct {
	name  string
	year  string
	color string
}

var seedCourses = []seedCourse{
	{name: "Matematika XI-A", year: "2025/2026", color: "#0ea5e9"},
	{name: "Biologi XI-A", year: "2025/2026", color: "#10b981"},
	{name: "Sejarah X-B", year: "2024/2023", color: "#f97316"},
}

func (s *SeedService) ensureUser(ctx context.Context, name, email string, role model.UserRole) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(seedPassword)
	if err != nil {
		return nil, err
	}
	user = &model.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SeedService) Seed(ctx context.Context) error {
	teacher, err := s.ensureUser(ctx, "Bapak Budi", "guru@aldudu.com", model.Teacher)
	if err != nil {
		return err
	}
	student, err := s.ensureUser(ctx, "Siti Murid", "murid@aldudu.com", model.Student)
	if err != nil {
		return err
	}

	years := map[string]*model.AcademicYear{
		"2025/2026": {Year: "2025/2026", IsActive: true},
		"2024/2023": {Year: "2024/2023"},
	}
	for _, year := range years {
		if err := s.CourseRepo.FirstOrCreateAcademicYear(ctx, year); err != nil {
			return err
		}
	}

	for _, sc := range seedCourses {
		course, err := s.CourseRepo.FindByNameAndTeacher(ctx, sc.name, teacher.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		code, err := s.courses.generateClassCode(ctx)
		if err != nil {
			return err
		}
		course = &model.Course{
			Name:           sc.name,
			ClassCode:      code,
			Color:          sc.color,
			AcademicYearID: years[sc.year].ID,
			TeacherID:      teacher.ID,
		}
		if err := s.CourseRepo.Create(ctx, course); err != nil {
			return err
		}
	}

	history, err := s.CourseRepo.FindByNameAndTeacher(ctx, "Sejarah X-B", teacher.ID)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Enroll(ctx, history.ID, student.ID); err != nil && !errors.Is(err, repository.ErrAlreadyEnrolled) {
		return err
	}

	logger.Log.Info("Sample data seeded", zap.Uint("teacher_id", teacher.ID), zap.Uint("student_id", student.ID))
	return nil
}
