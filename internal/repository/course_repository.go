package repository

import (
	"aldudu_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

const enrollmentTable = "enrollments"

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// ListAcademicYears 按学年倒序
func (r *CourseRepository) ListAcademicYears(ctx context.Context) ([]model.AcademicYear, error) {
	var years []model.AcademicYear
	err := r.DB.WithContext(ctx).Order("year DESC").Find(&years).Error
	return years, err
}

func (r *CourseRepository) FindAcademicYear(ctx context.Context, id uint) (*model.AcademicYear, error) {
	var year model.AcademicYear
	err := r.DB.WithContext(ctx).First(&year, id).Error
	return &year, err
}

// FirstOrCreateAcademicYear 按学年名称查找，不存在则创建
func (r *CourseRepository) FirstOrCreateAcademicYear(ctx context.Context, year *model.AcademicYear) error {
	return r.DB.WithContext(ctx).
		Where(model.AcademicYear{Year: year.Year}).
		Attrs(model.AcademicYear{IsActive: year.IsActive}).
		FirstOrCreate(year).Error
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

// UpdateFields 只更新名称与颜色
func (r *CourseRepository) UpdateFields(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Model(course).Select("name", "color").Updates(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Preload("Teacher").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByClassCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Preload("Teacher").Where("class_code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindByNameAndTeacher(ctx context.Context, name string, teacherID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Where("name = ? AND teacher_id = ?", name, teacherID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ClassCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("class_code = ?", code).Count(&count).Error
	return count > 0, err
}

// ListByTeacher 老师在某学年任教的课程，按名称排序
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID, yearID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Preload("Teacher").
		Where("teacher_id = ? AND academic_year_id = ?", teacherID, yearID).
		Order("name").
		Find(&courses).Error
	return courses, err
}

// ListByStudent 学生在某学年选修的课程，按名称排序
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID, yearID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Preload("Teacher").
		Joins("JOIN "+enrollmentTable+" ON "+enrollmentTable+".course_id = courses.id").
		Where(enrollmentTable+".user_id = ? AND courses.academic_year_id = ?", studentID, yearID).
		Order("courses.name").
		Find(&courses).Error
	return courses, err
}

// CountStudents 返回 courseID -> 学生人数
func (r *CourseRepository) CountStudents(ctx context.Context, courseIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID uint
		Total    int64
	}
	err := r.DB.WithContext(ctx).
		Table(enrollmentTable).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseID] = row.Total
	}
	return counts, nil
}

func (r *CourseRepository) IsEnrolled(ctx context.Context, courseID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table(enrollmentTable).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

// Enroll 重复选课返回 ErrAlreadyEnrolled
func (r *CourseRepository) Enroll(ctx context.Context, courseID, userID uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(enrollmentTable).
			Where("course_id = ? AND user_id = ?", courseID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyEnrolled
		}
		return tx.Table(enrollmentTable).Create(map[string]interface{}{
			"course_id": courseID,
			"user_id":   userID,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyEnrolled
	}
	return err
}

// Delete 删除课程及其测验、资料、讨论和选课记录
func (r *CourseRepository) Delete(ctx context.Context, courseID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("course_id = ?", courseID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if err := deleteQuizzesTx(tx, quizIDs); err != nil {
			return err
		}

		var discussionIDs []uint
		if err := tx.Model(&model.Discussion{}).Where("course_id = ?", courseID).Pluck("id", &discussionIDs).Error; err != nil {
			return err
		}
		if err := deleteDiscussionsTx(tx, discussionIDs); err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.Link{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseFile{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+enrollmentTable+" WHERE course_id = ?", courseID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, courseID).Error
	})
}
