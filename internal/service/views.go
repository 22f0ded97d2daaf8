package service

import (
	"aldudu_backend/internal/model"
	"time"
)

// 以下为接口返回的视图结构

type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func userRef(u *model.User) UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{ID: u.ID, Name: u.Name}
}

type AcademicYearView struct {
	ID       uint   `json:"id"`
	Year     string `json:"year"`
	IsActive bool   `json:"is_active"`
}

type CourseCard struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Teacher        string `json:"teacher"`
	StudentCount   int64  `json:"student_count"`
	ClassCode      string `json:"class_code"`
	Color          string `json:"color"`
	AcademicYearID uint   `json:"academic_year_id"`
	IsTeacher      bool   `json:"is_teacher"`
}

type InitialData struct {
	AcademicYears []AcademicYearView `json:"academic_years"`
	Courses       []CourseCard       `json:"courses"`
}

type QuizSummary struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	CourseID        uint       `json:"course_id"`
	Points          int        `json:"points"`
	GradeType       string     `json:"grade_type"`
	GradingCategory *string    `json:"grading_category"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	CreatedAt       time.Time  `json:"created_at"`
}

func quizSummary(q *model.Quiz) QuizSummary {
	return QuizSummary{
		ID:              q.ID,
		Name:            q.Name,
		CourseID:        q.CourseID,
		Points:          q.Points,
		GradeType:       string(q.GradeType),
		GradingCategory: q.GradingCategory,
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		CreatedAt:       q.CreatedAt,
	}
}

type FileView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"created_at"`
}

func fileView(f *model.CourseFile, now time.Time) FileView {
	return FileView{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Filename:    f.OriginalName,
		ContentType: f.ContentType,
		Size:        f.Size,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Available:   f.VisibleAt(now),
		CreatedAt:   f.CreatedAt,
	}
}

type CourseDetail struct {
	Course  CourseCard    `json:"course"`
	Quizzes []QuizSummary `json:"quizzes"`
	Links   []model.Link  `json:"links"`
	Files   []FileView    `json:"files"`
}

// OptionView 学生视图中不包含 is_correct
type OptionView struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
	Order      int    `json:"order"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

type QuestionView struct {
	ID           uint         `json:"id"`
	QuizID       uint         `json:"quiz_id"`
	QuestionText string       `json:"question_text"`
	QuestionType string       `json:"question_type"`
	Order        int          `json:"order"`
	ImagePath    *string      `json:"image_path"`
	ImageURL     string       `json:"image_url,omitempty"`
	Description  *string      `json:"description"`
	Options      []OptionView `json:"options"`
}

type QuizDetail struct {
	QuizSummary
	IsTeacher bool           `json:"is_teacher"`
	Questions []QuestionView `json:"questions"`
}

func optionView(o *model.Option, withAnswer bool) OptionView {
	v := OptionView{ID: o.ID, OptionText: o.OptionText, Order: o.Order}
	if withAnswer {
		correct := o.IsCorrect
		v.IsCorrect = &correct
	}
	return v
}

func questionView(q *model.Question, withAnswer bool, imageURL func(string) string) QuestionView {
	v := QuestionView{
		ID:           q.ID,
		QuizID:       q.QuizID,
		QuestionText: q.QuestionText,
		QuestionType: string(q.QuestionType),
		Order:        q.Order,
		ImagePath:    q.ImagePath,
		Description:  q.Description,
		Options:      make([]OptionView, 0, len(q.Options)),
	}
	if q.ImagePath != nil && imageURL != nil {
		v.ImageURL = imageURL(*q.ImagePath)
	}
	for i := range q.Options {
		v.Options = append(v.Options, optionView(&q.Options[i], withAnswer))
	}
	return v
}

type SubmissionResult struct {
	SubmissionID   uint    `json:"submission_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
}

type AnswerView struct {
	QuestionID     uint    `json:"question_id"`
	QuestionText   string  `json:"question_text"`
	SelectedOption *string `json:"selected_option,omitempty"`
	IsCorrect      *bool   `json:"is_correct,omitempty"`
	AnswerText     *string `json:"answer_text,omitempty"`
}

type SubmissionView struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	UserName    string       `json:"user_name"`
	SubmittedAt time.Time    `json:"submitted_at"`
	Score       float64      `json:"score"`
	TotalPoints int          `json:"total_points"`
	Answers     []AnswerView `json:"answers"`
}

func submissionView(s *model.QuizSubmission) SubmissionView {
	v := SubmissionView{
		ID:          s.ID,
		UserID:      s.UserID,
		SubmittedAt: s.SubmittedAt,
		Score:       s.Score,
		TotalPoints: s.TotalPoints,
		Answers:     make([]AnswerView, 0, len(s.Answers)),
	}
	if s.User != nil {
		v.UserName = s.User.Name
	}
	for _, a := range s.Answers {
		av := AnswerView{QuestionID: a.QuestionID, AnswerText: a.AnswerText}
		if a.Question != nil {
			av.QuestionText = a.Question.QuestionText
		}
		if a.SelectedOption != nil {
			text := a.SelectedOption.OptionText
			correct := a.SelectedOption.IsCorrect
			av.SelectedOption = &text
			av.IsCorrect = &correct
		}
		v.Answers = append(v.Answers, av)
	}
	return v
}

type DiscussionView struct {
	ID        uint      `json:"id"`
	CourseID  uint      `json:"course_id"`
	Title     string    `json:"title"`
	Closed    bool      `json:"closed"`
	User      UserRef   `json:"user"`
	PostCount int64     `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	CanClose  bool      `json:"can_close"`
}

type LikeView struct {
	User UserRef `json:"user"`
}

type PostView struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	ParentID  *uint      `json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
	User      UserRef    `json:"user"`
	Likes     []LikeView `json:"likes"`
	CanEdit   bool       `json:"can_edit"`
	CanDelete bool       `json:"can_delete"`
}

type LikeResult struct {
	Action string `json:"action"`
	Likes  int64  `json:"likes"`
}
