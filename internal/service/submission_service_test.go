package service

import (
	"context"
	"testing"

	"aldudu_backend/internal/model"
	"aldudu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choose(q *QuestionView, index int) SubmittedAnswer {
	id := q.Options[index].ID
	return SubmittedAnswer{QuestionID: q.ID, SelectedOptionID: &id}
}

func TestSubmitScoresPercentage(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	quiz := s.newQuiz(t, "Kuis")
	q1 := s.newChoiceQuestion(t, quiz.ID, 0)
	q2 := s.newChoiceQuestion(t, quiz.ID, 1)

	result, err := s.Submissions.Submit(ctx, s.student(), quiz.ID, []SubmittedAnswer{choose(q1, 0), choose(q2, 0)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)

	_, err = s.Submissions.Submit(ctx, s.student(), quiz.ID, []SubmittedAnswer{choose(q1, 0), choose(q2, 1)})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
}

func TestSubmitRejections(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	quiz := s.newQuiz(t, "Kuis")
	q := s.newChoiceQuestion(t, quiz.ID, 0)
	answers := []SubmittedAnswer{choose(q, 0)}

	_, err := s.Submissions.Submit(ctx, s.teacher(), quiz.ID, answers)
	assert.ErrorIs(t, err, util.ErrTeacherCannotSubmit)

	_, err = s.Submissions.Submit(ctx, s.outsider(), quiz.ID, answers)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = s.Submissions.Submit(ctx, s.student(), 404, answers)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = s.Submissions.Submit(ctx, s.student(), quiz.ID, nil)
	assert.ErrorIs(t, err, util.ErrNoAnswers)
}

func TestSubmitLongTextAndForeignQuestions(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	quiz := s.newQuiz(t, "Kuis")
	mc := s.newChoiceQuestion(t, quiz.ID, 0)
	long, err := s.Quizzes.AddQuestion(ctx, s.teacher(), quiz.ID, "long_text")
	require.NoError(t, err)

	other := s.newQuiz(t, "Lain")
	foreign := s.newChoiceQuestion(t, other.ID, 0)

	blank := "   "
	result, err := s.Submissions.Submit(ctx, s.student(), quiz.ID, []SubmittedAnswer{
		choose(mc, 0),
		{QuestionID: long.ID, AnswerText: &blank},
		choose(foreign, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)

	essay := "Fotosintesis menghasilkan oksigen"
	result, err = s.Submissions.Submit(ctx, actorOf(s.enrollOutsider(t)), quiz.ID, []SubmittedAnswer{
		choose(mc, 0),
		{QuestionID: long.ID, AnswerText: &essay},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
}

func TestSubmitOnlyForeignAnswersScoresZero(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	quiz := s.newQuiz(t, "Kuis")
	s.newChoiceQuestion(t, quiz.ID, 0)

	result, err := s.Submissions.Submit(ctx, s.student(), quiz.ID, []SubmittedAnswer{{QuestionID: 9999}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
}

func TestSubmissionsVisibility(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	quiz := s.newQuiz(t, "Kuis")
	q := s.newChoiceQuestion(t, quiz.ID, 0)

	_, err := s.Submissions.Submissions(ctx, s.student(), quiz.ID)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)

	_, err = s.Submissions.Submit(ctx, s.student(), quiz.ID, []SubmittedAnswer{choose(q, 1)})
	require.NoError(t, err)

	own, err := s.Submissions.Submissions(ctx, s.student(), quiz.ID)
	require.NoError(t, err)
	assert.False(t, own.IsTeacher)
	require.NotNil(t, own.Submission)
	assert.Equal(t, 0.0, own.Submission.Score)
	assert.Equal(t, 100, own.Submission.TotalPoints)
	require.Len(t, own.Submission.Answers, 1)
	answer := own.Submission.Answers[0]
	assert.Equal(t, q.QuestionText, answer.QuestionText)
	require.NotNil(t, answer.SelectedOption)
	assert.Equal(t, q.Options[1].OptionText, *answer.SelectedOption)
	require.NotNil(t, answer.IsCorrect)
	assert.False(t, *answer.IsCorrect)

	all, err := s.Submissions.Submissions(ctx, s.teacher(), quiz.ID)
	require.NoError(t, err)
	assert.True(t, all.IsTeacher)
	require.Len(t, all.Submissions, 1)
	assert.Equal(t, "Siti Murid", all.Submissions[0].UserName)

	_, err = s.Submissions.Submissions(ctx, s.outsider(), quiz.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestBiologyCourseEndToEnd(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	course, err := s.Courses.Create(ctx, s.teacher(), CreateCourseInput{Name: "Biologi", AcademicYearID: float64(s.Year.ID)})
	require.NoError(t, err)
	assert.Len(t, course.ClassCode, 6)

	enrolled, err := s.Courses.Enroll(ctx, s.outsider(), course.ClassCode)
	require.NoError(t, err)
	assert.EqualValues(t, 1, enrolled.StudentCount)

	quiz, err := s.Quizzes.CreateQuiz(ctx, s.teacher(), course.ID, CreateQuizInput{Name: "Sel"})
	require.NoError(t, err)
	q, err := s.Quizzes.AddQuestion(ctx, s.teacher(), quiz.ID, string(model.TrueFalse))
	require.NoError(t, err)
	require.Len(t, q.Options, 2)
	assert.Equal(t, "Benar", q.Options[0].OptionText)
	assert.Equal(t, "Salah", q.Options[1].OptionText)

	q, err = s.Quizzes.SetCorrect(ctx, s.teacher(), q.ID, q.Options[0].ID)
	require.NoError(t, err)

	result, err := s.Submissions.Submit(ctx, s.outsider(), quiz.ID, []SubmittedAnswer{choose(q, 0)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
}

// enrollOutsider 把 outsider 加入 fixture 课程
func (s *services) enrollOutsider(t *testing.T) *model.User {
	t.Helper()
	_, err := s.Courses.Enroll(context.Background(), s.outsider(), s.Course.ClassCode)
	require.NoError(t, err)
	return s.Outsider
}
