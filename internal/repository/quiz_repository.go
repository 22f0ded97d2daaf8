package repository

import (
	"aldudu_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order, id")
}

// lockRow 在事务内对一行加 FOR UPDATE 锁（SQLite 忽略）
func lockRow(tx *gorm.DB, value interface{}, id uint) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(value, id).Error
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).Preload("Course").First(&quiz, id).Error
	return &quiz, err
}

// FindWithQuestions 加载完整题目树，题目与选项均按 order 排序
func (r *QuizRepository) FindWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Preload("Questions", bySortOrder).
		Preload("Questions.Options", bySortOrder).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC, id DESC").Find(&quizzes).Error
	return quizzes, err
}

// Delete 级联删除题目、选项、提交与答案
func (r *QuizRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteQuizzesTx(tx, []uint{id})
	})
}

func (r *QuizRepository) FindQuestion(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.WithContext(ctx).
		Preload("Quiz.Course").
		Preload("Options", bySortOrder).
		First(&question, id).Error
	return &question, err
}

// AddQuestion 锁定测验后分配下一个 order，build 根据 order 构造题目（含默认选项）
func (r *QuizRepository) AddQuestion(ctx context.Context, quizID uint, build func(order int) *model.Question) (*model.Question, error) {
	var question *model.Question
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Quiz{}, quizID); err != nil {
			return err
		}
		order, err := nextOrder(tx, &model.Question{}, "quiz_id", quizID)
		if err != nil {
			return err
		}
		question = build(order)
		question.QuizID = quizID
		return tx.Create(question).Error
	})
	return question, err
}

func (r *QuizRepository) UpdateQuestion(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).
		Model(&model.Question{BaseModel: model.BaseModel{ID: id}}).
		Updates(fields).Error
}

// ChangeQuestionType 删除全部旧选项后按新题型重建，引用旧选项的答案置空
func (r *QuizRepository) ChangeQuestionType(ctx context.Context, questionID uint, questionType model.QuestionType, options []model.Option) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Question{}, questionID); err != nil {
			return err
		}
		if err := deleteOptionsTx(tx, "question_id = ?", questionID); err != nil {
			return err
		}
		if err := tx.Model(&model.Question{BaseModel: model.BaseModel{ID: questionID}}).
			Update("question_type", questionType).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		for i := range options {
			options[i].QuestionID = questionID
		}
		return tx.Create(&options).Error
	})
}

func (r *QuizRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteQuestionsTx(tx, []uint{id})
	})
}

// SetCorrectOption 锁定题目后先清空再设置，保证同一题只有一个正确选项
func (r *QuizRepository) SetCorrectOption(ctx context.Context, questionID, optionID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Question{}, questionID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Option{}).
			Where("id = ? AND question_id = ?", optionID, questionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrOptionMismatch
		}

		if err := tx.Model(&model.Option{}).
			Where("question_id = ?", questionID).
			Update("is_correct", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Option{}).
			Where("id = ?", optionID).
			Update("is_correct", true).Error
	})
}

func (r *QuizRepository) FindOption(ctx context.Context, id uint) (*model.Option, error) {
	var option model.Option
	err := r.DB.WithContext(ctx).Preload("Question.Quiz.Course").First(&option, id).Error
	return &option, err
}

func (r *QuizRepository) ListOptions(ctx context.Context, questionID uint) ([]model.Option, error) {
	var options []model.Option
	err := bySortOrder(r.DB.WithContext(ctx)).Where("question_id = ?", questionID).Find(&options).Error
	return options, err
}

// AddOption 锁定题目后分配下一个 order
func (r *QuizRepository) AddOption(ctx context.Context, questionID uint, build func(order int) *model.Option) (*model.Option, error) {
	var option *model.Option
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Question{}, questionID); err != nil {
			return err
		}
		order, err := nextOrder(tx, &model.Option{}, "question_id", questionID)
		if err != nil {
			return err
		}
		option = build(order)
		option.QuestionID = questionID
		return tx.Create(option).Error
	})
	return option, err
}

func (r *QuizRepository) UpdateOptionText(ctx context.Context, id uint, text string) error {
	return r.DB.WithContext(ctx).
		Model(&model.Option{BaseModel: model.BaseModel{ID: id}}).
		Update("option_text", text).Error
}

// DeleteOption 题目只剩最后一个选项时返回 ErrLastOption
func (r *QuizRepository) DeleteOption(ctx context.Context, option *model.Option) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Question{}, option.QuestionID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.Option{}).Where("question_id = ?", option.QuestionID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastOption
		}
		return deleteOptionsTx(tx, "id = ?", option.ID)
	})
}

// ReplaceQuestions 在一个事务内删除测验的全部题目并按顺序重建
func (r *QuizRepository) ReplaceQuestions(ctx context.Context, quizID uint, questions []model.Question) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &model.Quiz{}, quizID); err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if err := deleteQuestionsTx(tx, questionIDs); err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = quizID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// deleteOptionsTx 删除选项前把引用它们的答案置空
func deleteOptionsTx(tx *gorm.DB, query string, args ...interface{}) error {
	var optionIDs []uint
	if err := tx.Model(&model.Option{}).Where(query, args...).Pluck("id", &optionIDs).Error; err != nil {
		return err
	}
	if len(optionIDs) == 0 {
		return nil
	}
	if err := tx.Model(&model.Answer{}).
		Where("selected_option_id IN ?", optionIDs).
		Update("selected_option_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", optionIDs).Delete(&model.Option{}).Error
}
