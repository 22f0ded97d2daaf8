package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/logger"
	"aldudu_backend/pkg/monitoring"
	"aldudu_backend/pkg/tracing"
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type SubmissionService struct {
	QuizRepo       *repository.QuizRepository
	SubmissionRepo *repository.SubmissionRepository
	Access         *Access
}

func NewSubmissionService(quizRepo *repository.QuizRepository, submissionRepo *repository.SubmissionRepository, access *Access) *SubmissionService {
	return &SubmissionService{QuizRepo: quizRepo, SubmissionRepo: submissionRepo, Access: access}
}

// SubmittedAnswer 选择题填 SelectedOptionID，问答题填 AnswerText
type SubmittedAnswer struct {
	QuestionID       uint    `json:"question_id"`
	SelectedOptionID *uint   `json:"selected_option_id"`
	AnswerText       *string `json:"answer_text"`
}

// SubmissionsView 老师看到全部提交，学生只看到自己的
type SubmissionsView struct {
	IsTeacher   bool             `json:"is_teacher"`
	Submissions []SubmissionView `json:"submissions"`
	Submission  *SubmissionView  `json:"submission,omitempty"`
}

// gradeResult 评分结果：maxScore 为计分题目数，totalScore 为答对数
type gradeResult struct {
	answers    []model.Answer
	maxScore   int
	totalScore int
}

func (g gradeResult) percentage() float64 {
	if g.maxScore == 0 {
		return 0
	}
	return float64(g.totalScore) / float64(g.maxScore) * 100
}

// grade 不属于该测验的题目被忽略；同一题目只取第一次作答
func grade(quiz *model.Quiz, submitted []SubmittedAnswer) gradeResult {
	questions := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	var result gradeResult
	answered := make(map[uint]bool)
	for _, a := range submitted {
		question, ok := questions[a.QuestionID]
		if !ok || answered[a.QuestionID] {
			continue
		}
		answered[a.QuestionID] = true

		answer := model.Answer{QuestionID: question.ID}
		switch {
		case question.QuestionType.IsChoice():
			result.maxScore++
			if a.SelectedOptionID != nil {
				for _, o := range question.Options {
					if o.ID != *a.SelectedOptionID {
						continue
					}
					id := o.ID
					answer.SelectedOptionID = &id
					if o.IsCorrect {
						result.totalScore++
					}
				}
			}
		default:
			if a.AnswerText == nil || strings.TrimSpace(*a.AnswerText) == "" {
				continue
			}
			text := util.SanitizeText(*a.AnswerText, util.MaxQuestionTextLen)
			answer.AnswerText = &text
			result.maxScore++
		}
		result.answers = append(result.answers, answer)
	}
	return result
}

// Submit 每个学生每个测验只能提交一次
func (s *SubmissionService) Submit(ctx context.Context, actor Actor, quizID uint, answers []SubmittedAnswer) (result *SubmissionResult, err error) {
	ctx, span := tracing.Start(ctx, "SubmissionService.Submit",
		attribute.Int64("quiz.id", int64(quizID)),
		attribute.Int64("user.id", int64(actor.UserID)),
	)
	defer func() {
		if err != nil {
			monitoring.RecordSubmission("rejected", 0)
		}
		tracing.End(span, err)
	}()

	quiz, err := s.QuizRepo.FindWithQuestions(ctx, quizID)
	if err != nil {
		return nil, notFound(err, util.ErrQuizNotFound)
	}
	if s.Access.IsCourseTeacher(quiz.Course, actor) {
		return nil, util.ErrTeacherCannotSubmit
	}
	enrolled, err := s.Access.IsEnrolled(ctx, quiz.Course, actor)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	exists, err := s.SubmissionRepo.Exists(ctx, quizID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadySubmitted
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswers
	}

	graded := grade(quiz, answers)
	totalPoints := quiz.Points
	if totalPoints <= 0 {
		totalPoints = defaultQuizPoints
	}
	submission := &model.QuizSubmission{
		QuizID:      quizID,
		UserID:      actor.UserID,
		SubmittedAt: time.Now(),
		Score:       graded.percentage(),
		TotalPoints: totalPoints,
		Answers:     graded.answers,
	}

	if err := s.SubmissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrAlreadySubmitted) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	monitoring.RecordSubmission("accepted", submission.Score)
	logger.Log.Info("Quiz submitted",
		zap.Uint("quiz_id", quizID),
		zap.Uint("user_id", actor.UserID),
		zap.Float64("score", submission.Score),
	)
	span.SetAttributes(attribute.Float64("submission.score", submission.Score))

	return &SubmissionResult{
		SubmissionID:   submission.ID,
		Score:          submission.Score,
		TotalQuestions: graded.maxScore,
		CorrectAnswers: graded.totalScore,
	}, nil
}

func (s *SubmissionService) Submissions(ctx context.Context, actor Actor, quizID uint) (*SubmissionsView, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, notFound(err, util.ErrQuizNotFound)
	}

	if s.Access.IsCourseTeacher(quiz.Course, actor) {
		submissions, err := s.SubmissionRepo.ListByQuiz(ctx, quizID)
		if err != nil {
			return nil, err
		}
		view := &SubmissionsView{IsTeacher: true, Submissions: make([]SubmissionView, 0, len(submissions))}
		for i := range submissions {
			view.Submissions = append(view.Submissions, submissionView(&submissions[i]))
		}
		return view, nil
	}

	enrolled, err := s.Access.IsEnrolled(ctx, quiz.Course, actor)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	submission, err := s.SubmissionRepo.FindByQuizAndUser(ctx, quizID, actor.UserID)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	own := submissionView(submission)
	return &SubmissionsView{Submission: &own}, nil
}
