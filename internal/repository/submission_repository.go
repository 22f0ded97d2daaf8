package repository

import (
	"aldudu_backend/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Answers.Question").
		Preload("Answers.SelectedOption")
}

func (r *SubmissionRepository) Exists(ctx context.Context, quizID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.QuizSubmission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count > 0, err
}

// Create 提交与答案在同一事务写入，(quiz_id, user_id) 已存在时返回 ErrAlreadySubmitted
func (r *SubmissionRepository) Create(ctx context.Context, submission *model.QuizSubmission) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.QuizSubmission{}).
			Where("quiz_id = ? AND user_id = ?", submission.QuizID, submission.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadySubmitted
		}
		return tx.Create(submission).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadySubmitted
	}
	return err
}

func (r *SubmissionRepository) FindByQuizAndUser(ctx context.Context, quizID, userID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := preloadAnswers(r.DB.WithContext(ctx)).
		Preload("User").
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		First(&submission).Error
	return &submission, err
}

// ListByQuiz 按提交时间排序
func (r *SubmissionRepository) ListByQuiz(ctx context.Context, quizID uint) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := preloadAnswers(r.DB.WithContext(ctx)).
		Preload("User").
		Where("quiz_id = ?", quizID).
		Order("submitted_at, id").
		Find(&submissions).Error
	return submissions, err
}
