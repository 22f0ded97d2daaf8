package model

import (
	"time"
)

// QuizSubmission 每个学生每个测验只有一份，(quiz_id, user_id) 唯一
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	QuizID      uint      `gorm:"not null;uniqueIndex:idx_submission_quiz_user" json:"quiz_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_submission_quiz_user;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	Score       float64   `gorm:"not null" json:"score"`
	TotalPoints int       `gorm:"not null" json:"total_points"`
	Answers     []Answer  `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// Answer 选择题记录 SelectedOptionID，问答题记录 AnswerText
type Answer struct {
	BaseModel
	SubmissionID     uint      `gorm:"index;not null" json:"submission_id"`
	QuestionID       uint      `gorm:"index;not null" json:"question_id"`
	Question         *Question `gorm:"foreignKey:QuestionID" json:"-"`
	AnswerText       *string   `gorm:"type:text" json:"answer_text"`
	SelectedOptionID *uint     `gorm:"index" json:"selected_option_id"`
	SelectedOption   *Option   `gorm:"foreignKey:SelectedOptionID" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}
