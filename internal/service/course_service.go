package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/logger"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxClassCodeAttempts 生成班级码的最大重试次数
const maxClassCodeAttempts = 10

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	MaterialRepo *repository.MaterialRepository
	Access       *Access
	Storage      *StorageService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.QuizRepository,
	materialRepo *repository.MaterialRepository,
	access *Access,
	storage *StorageService,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		MaterialRepo: materialRepo,
		Access:       access,
		Storage:      storage,
	}
}

type CreateCourseInput struct {
	Name           string
	AcademicYearID interface{}
}

type UpdateCourseInput struct {
	Name  *string
	Color *string
}

func (s *CourseService) cards(ctx context.Context, actor Actor, courses []model.Course) ([]CourseCard, error) {
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	counts, err := s.CourseRepo.CountStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]CourseCard, 0, len(courses))
	for i := range courses {
		cards = append(cards, courseCard(&courses[i], actor, counts[courses[i].ID]))
	}
	return cards, nil
}

func (s *CourseService) card(ctx context.Context, actor Actor, course *model.Course) (CourseCard, error) {
	cards, err := s.cards(ctx, actor, []model.Course{*course})
	if err != nil {
		return CourseCard{}, err
	}
	return cards[0], nil
}

func courseCard(c *model.Course, actor Actor, students int64) CourseCard {
	card := CourseCard{
		ID:             c.ID,
		Name:           c.Name,
		StudentCount:   students,
		ClassCode:      c.ClassCode,
		Color:          c.Color,
		AcademicYearID: c.AcademicYearID,
		IsTeacher:      c.TeacherID == actor.UserID,
	}
	if c.Teacher != nil {
		card.Teacher = c.Teacher.Name
	}
	return card
}

// CoursesForYear 老师看到任教课程，学生看到已选课程
func (s *CourseService) CoursesForYear(ctx context.Context, actor Actor, yearID uint) ([]CourseCard, error) {
	if yearID == 0 {
		return []CourseCard{}, nil
	}

	var courses []model.Course
	var err error
	if actor.IsTeacher() {
		courses, err = s.CourseRepo.ListByTeacher(ctx, actor.UserID, yearID)
	} else {
		courses, err = s.CourseRepo.ListByStudent(ctx, actor.UserID, yearID)
	}
	if err != nil {
		return nil, err
	}
	return s.cards(ctx, actor, courses)
}

// InitialData 学年倒序，课程取最新学年
func (s *CourseService) InitialData(ctx context.Context, actor Actor) (*InitialData, error) {
	years, err := s.CourseRepo.ListAcademicYears(ctx)
	if err != nil {
		return nil, err
	}

	data := &InitialData{
		AcademicYears: make([]AcademicYearView, 0, len(years)),
		Courses:       []CourseCard{},
	}
	for _, y := range years {
		data.AcademicYears = append(data.AcademicYears, AcademicYearView{ID: y.ID, Year: y.Year, IsActive: y.IsActive})
	}
	if len(years) == 0 {
		return data, nil
	}

	data.Courses, err = s.CoursesForYear(ctx, actor, years[0].ID)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *CourseService) generateClassCode(ctx context.Context) (string, error) {
	for i := 0; i < maxClassCodeAttempts; i++ {
		code, err := util.GenerateClassCode()
		if err != nil {
			return "", err
		}
		exists, err := s.CourseRepo.ClassCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique class code")
}

func (s *CourseService) Create(ctx context.Context, actor Actor, input CreateCourseInput) (*CourseCard, error) {
	if !actor.IsTeacher() {
		return nil, util.ErrNotTeacher
	}

	name := util.SanitizeText(input.Name, util.MaxCourseNameLen)
	if name == "" {
		return nil, util.Invalid("course name is required")
	}

	yearID, ok := util.ParseID(input.AcademicYearID)
	if !ok {
		return nil, util.Invalid("invalid academic year")
	}
	if _, err := s.CourseRepo.FindAcademicYear(ctx, yearID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.Invalid("academic year does not exist")
		}
		return nil, err
	}

	course := &model.Course{
		Name:           name,
		Color:          model.DefaultCourseColor,
		AcademicYearID: yearID,
		TeacherID:      actor.UserID,
	}

	for attempt := 0; ; attempt++ {
		code, err := s.generateClassCode(ctx)
		if err != nil {
			return nil, err
		}
		course.ClassCode = code
		err = s.CourseRepo.Create(ctx, course)
		if err == nil {
			break
		}
		// 并发下班级码冲突时重新生成
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= maxClassCodeAttempts {
			return nil, err
		}
	}

	course, err := s.CourseRepo.FindByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	card, err := s.card(ctx, actor, course)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Course created", zap.Uint("course_id", course.ID), zap.Uint("teacher_id", actor.UserID))
	return &card, nil
}

func (s *CourseService) Update(ctx context.Context, actor Actor, courseID uint, input UpdateCourseInput) (*CourseCard, error) {
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireCourseTeacher(course, actor); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := util.SanitizeText(*input.Name, util.MaxCourseNameLen)
		if name == "" {
			return nil, util.Invalid("invalid course name")
		}
		course.Name = name
	}
	if input.Color != nil {
		if !util.IsValidColor(*input.Color) {
			return nil, util.Invalid("invalid color")
		}
		course.Color = *input.Color
	}

	if err := s.CourseRepo.UpdateFields(ctx, course); err != nil {
		return nil, err
	}
	card, err := s.card(ctx, actor, course)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Detail 课程卡片及其测验、链接、文件（均按创建时间倒序）
func (s *CourseService) Detail(ctx context.Context, actor Actor, courseID uint) (*CourseDetail, error) {
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireViewer(ctx, course, actor); err != nil {
		return nil, err
	}

	card, err := s.card(ctx, actor, course)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	links, err := s.MaterialRepo.ListLinks(ctx, courseID)
	if err != nil {
		return nil, err
	}
	files, err := s.MaterialRepo.ListFiles(ctx, courseID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:  card,
		Quizzes: make([]QuizSummary, 0, len(quizzes)),
		Links:   links,
		Files:   make([]FileView, 0, len(files)),
	}
	for i := range quizzes {
		detail.Quizzes = append(detail.Quizzes, quizSummary(&quizzes[i]))
	}
	now := time.Now()
	for i := range files {
		detail.Files = append(detail.Files, fileView(&files[i], now))
	}
	return detail, nil
}

// Enroll 格式错误、班级码不存在、已选课分别返回不同错误
func (s *CourseService) Enroll(ctx context.Context, actor Actor, classCode string) (*CourseCard, error) {
	if !actor.IsStudent() {
		return nil, util.ErrNotStudent
	}
	if !util.IsValidClassCode(classCode) {
		return nil, util.ErrInvalidClassCode
	}

	course, err := s.CourseRepo.FindByClassCode(ctx, util.NormalizeClassCode(classCode))
	if err != nil {
		return nil, notFound(err, util.ErrClassCodeNotFound)
	}

	if err := s.CourseRepo.Enroll(ctx, course.ID, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	card, err := s.card(ctx, actor, course)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete 删除课程及全部关联数据，随后清理已存储的文件
func (s *CourseService) Delete(ctx context.Context, actor Actor, courseID uint) error {
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.Access.RequireCourseTeacher(course, actor); err != nil {
		return err
	}

	files, err := s.MaterialRepo.ListFiles(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	for _, f := range files {
		if err := s.Storage.Delete(ctx, f.ObjectName); err != nil {
			logger.Log.Warn("Failed to delete stored file", zap.String("object", f.ObjectName), zap.Error(err))
		}
	}
	return nil
}
