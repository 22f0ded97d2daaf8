package model

import (
	"strings"
	"time"
)

type GradeType string

const (
	GradeNumeric GradeType = "numeric"
	GradeLetter  GradeType = "letter"
)

// ParseGradeType 无法识别时回退为 numeric
func ParseGradeType(s string) GradeType {
	switch GradeType(strings.ToLower(strings.TrimSpace(s))) {
	case GradeLetter:
		return GradeLetter
	default:
		return GradeNumeric
	}
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	LongText       QuestionType = "long_text"
)

func ParseQuestionType(s string) (QuestionType, bool) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case MultipleChoice, TrueFalse, LongText:
		return t, true
	}
	return "", false
}

// IsChoice 选择类题型才有选项
func (t QuestionType) IsChoice() bool {
	return t == MultipleChoice || t == TrueFalse
}

const (
	OptionTrue  = "Benar"
	OptionFalse = "Salah"
)

// DefaultOptions 按题型生成默认选项
func DefaultOptions(t QuestionType) []Option {
	switch t {
	case MultipleChoice:
		return []Option{{OptionText: "Opsi 1", Order: 1}}
	case TrueFalse:
		return []Option{
			{OptionText: OptionTrue, Order: 1},
			{OptionText: OptionFalse, Order: 2},
		}
	}
	return nil
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Name            string     `gorm:"size:200;not null" json:"name"`
	CourseID        uint       `gorm:"index;not null" json:"course_id"`
	Course          *Course    `gorm:"foreignKey:CourseID" json:"-"`
	GradeType       GradeType  `gorm:"size:20;not null" json:"grade_type"`
	GradingCategory *string    `gorm:"size:100" json:"grading_category"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Points          int        `gorm:"not null" json:"points"`
	Questions       []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID       uint         `gorm:"index;not null" json:"quiz_id"`
	Quiz         *Quiz        `gorm:"foreignKey:QuizID" json:"-"`
	QuestionText string       `gorm:"type:text;not null" json:"question_text"`
	QuestionType QuestionType `gorm:"size:20;not null" json:"question_type"`
	ImagePath    *string      `gorm:"size:500" json:"image_path"`
	Order        int          `gorm:"column:sort_order;not null" json:"order"`
	Description  *string      `gorm:"type:text" json:"description"`
	Options      []Option     `gorm:"foreignKey:QuestionID" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint      `gorm:"index;not null" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"-"`
	OptionText string    `gorm:"size:1000;not null" json:"option_text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	Order      int       `gorm:"column:sort_order;not null" json:"order"`
}

func (Option) TableName() string {
	return "options"
}
