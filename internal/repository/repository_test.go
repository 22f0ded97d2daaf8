package repository

import (
	"context"
	"testing"
	"time"

	"aldudu_backend/internal/model"
	"aldudu_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuiz(t *testing.T, db *gorm.DB, courseID uint) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{Name: "Kuis 1", CourseID: courseID, GradeType: model.GradeNumeric, Points: 100}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func addQuestion(t *testing.T, repo *QuizRepository, quizID uint, qt model.QuestionType) *model.Question {
	t.Helper()
	q, err := repo.AddQuestion(context.Background(), quizID, func(order int) *model.Question {
		return &model.Question{QuestionText: "Q", QuestionType: qt, Order: order, Options: model.DefaultOptions(qt)}
	})
	require.NoError(t, err)
	return q
}

func TestCourseRepository_Enroll(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewCourseRepository(f.DB)
	ctx := context.Background()

	err := repo.Enroll(ctx, f.Course.ID, f.Student.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	require.NoError(t, repo.Enroll(ctx, f.Course.ID, f.Outsider.ID))
	ok, err := repo.IsEnrolled(ctx, f.Course.ID, f.Outsider.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	counts, err := repo.CountStudents(ctx, []uint{f.Course.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[f.Course.ID])

	courses, err := repo.ListByStudent(ctx, f.Outsider.ID, f.Year.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Bapak Budi", courses[0].Teacher.Name)
}

func TestQuizRepository_AddQuestionOrder(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewQuizRepository(f.DB)
	quiz := createQuiz(t, f.DB, f.Course.ID)

	first := addQuestion(t, repo, quiz.ID, model.MultipleChoice)
	second := addQuestion(t, repo, quiz.ID, model.TrueFalse)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)

	loaded, err := repo.FindQuestion(context.Background(), second.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Options, 2)
	assert.Equal(t, model.OptionTrue, loaded.Options[0].OptionText)
	assert.Equal(t, f.Course.ID, loaded.Quiz.Course.ID)
}

func TestQuizRepository_SetCorrectOption(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewQuizRepository(f.DB)
	ctx := context.Background()
	quiz := createQuiz(t, f.DB, f.Course.ID)
	q := addQuestion(t, repo, quiz.ID, model.TrueFalse)
	other := addQuestion(t, repo, quiz.ID, model.MultipleChoice)

	options, err := repo.ListOptions(ctx, q.ID)
	require.NoError(t, err)

	require.NoError(t, repo.SetCorrectOption(ctx, q.ID, options[0].ID))
	require.NoError(t, repo.SetCorrectOption(ctx, q.ID, options[1].ID))

	options, err = repo.ListOptions(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, options[0].IsCorrect)
	assert.True(t, options[1].IsCorrect)

	err = repo.SetCorrectOption(ctx, q.ID, other.Options[0].ID)
	assert.ErrorIs(t, err, ErrOptionMismatch)
}

func TestQuizRepository_DeleteOption(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewQuizRepository(f.DB)
	ctx := context.Background()
	quiz := createQuiz(t, f.DB, f.Course.ID)
	q := addQuestion(t, repo, quiz.ID, model.MultipleChoice)

	err := repo.DeleteOption(ctx, &q.Options[0])
	assert.ErrorIs(t, err, ErrLastOption)

	extra, err := repo.AddOption(ctx, q.ID, func(order int) *model.Option {
		return &model.Option{OptionText: "Opsi", Order: order}
	})
	require.NoError(t, err)
	assert.Equal(t, 2, extra.Order)

	require.NoError(t, repo.DeleteOption(ctx, extra))
	options, err := repo.ListOptions(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, options, 1)
}

func TestQuizRepository_ChangeTypeClearsAnswers(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewQuizRepository(f.DB)
	ctx := context.Background()
	quiz := createQuiz(t, f.DB, f.Course.ID)
	q := addQuestion(t, repo, quiz.ID, model.MultipleChoice)

	optionID := q.Options[0].ID
	sub := &model.QuizSubmission{
		QuizID: quiz.ID, UserID: f.Student.ID, SubmittedAt: time.Now(),
		Answers: []model.Answer{{QuestionID: q.ID, SelectedOptionID: &optionID}},
	}
	require.NoError(t, f.DB.Create(sub).Error)

	require.NoError(t, repo.ChangeQuestionType(ctx, q.ID, model.TrueFalse, model.DefaultOptions(model.TrueFalse)))

	loaded, err := repo.FindQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TrueFalse, loaded.QuestionType)
	assert.Len(t, loaded.Options, 2)

	var answer model.Answer
	require.NoError(t, f.DB.First(&answer, sub.Answers[0].ID).Error)
	assert.Nil(t, answer.SelectedOptionID)
}

func TestQuizRepository_ReplaceAndDelete(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewQuizRepository(f.DB)
	ctx := context.Background()
	quiz := createQuiz(t, f.DB, f.Course.ID)
	addQuestion(t, repo, quiz.ID, model.MultipleChoice)
	addQuestion(t, repo, quiz.ID, model.MultipleChoice)

	err := repo.ReplaceQuestions(ctx, quiz.ID, []model.Question{
		{QuestionText: "Baru", QuestionType: model.TrueFalse, Order: 1, Options: model.DefaultOptions(model.TrueFalse)},
	})
	require.NoError(t, err)

	loaded, err := repo.FindWithQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, "Baru", loaded.Questions[0].QuestionText)

	var optionCount int64
	f.DB.Model(&model.Option{}).Count(&optionCount)
	assert.Equal(t, int64(2), optionCount)

	require.NoError(t, repo.Delete(ctx, quiz.ID))
	f.DB.Model(&model.Option{}).Count(&optionCount)
	assert.Zero(t, optionCount)
	_, err = repo.FindByID(ctx, quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepository_CreateOnce(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewSubmissionRepository(f.DB)
	ctx := context.Background()
	quiz := createQuiz(t, f.DB, f.Course.ID)

	require.NoError(t, repo.Create(ctx, &model.QuizSubmission{QuizID: quiz.ID, UserID: f.Student.ID, SubmittedAt: time.Now()}))
	err := repo.Create(ctx, &model.QuizSubmission{QuizID: quiz.ID, UserID: f.Student.ID, SubmittedAt: time.Now()})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestDiscussionRepository_Posts(t *testing.T) {
	f := testutil.NewFixture(t)
	repo := NewDiscussionRepository(f.DB)
	ctx := context.Background()

	d := &model.Discussion{Title: "Tugas", CourseID: f.Course.ID, UserID: f.Teacher.ID}
	root := &model.Post{Content: "Halo", UserID: f.Teacher.ID}
	require.NoError(t, repo.CreateWithFirstPost(ctx, d, root))

	reply := &model.Post{Content: "Balas", DiscussionID: d.ID, UserID: f.Student.ID, ParentID: &root.ID}
	require.NoError(t, repo.CreatePost(ctx, reply))
	nested := &model.Post{Content: "Balas lagi", DiscussionID: d.ID, UserID: f.Teacher.ID, ParentID: &reply.ID}
	require.NoError(t, repo.CreatePost(ctx, nested))

	other := &model.Discussion{Title: "Lain", CourseID: f.Course.ID, UserID: f.Teacher.ID}
	require.NoError(t, repo.CreateWithFirstPost(ctx, other, &model.Post{Content: "x", UserID: f.Teacher.ID}))
	err := repo.CreatePost(ctx, &model.Post{Content: "y", DiscussionID: other.ID, UserID: f.Teacher.ID, ParentID: &root.ID})
	assert.ErrorIs(t, err, ErrParentMismatch)

	liked, total, err := repo.ToggleLike(ctx, nested.ID, f.Student.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), total)

	counts, err := repo.CountPosts(ctx, []uint{d.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[d.ID])
	assert.Equal(t, int64(1), counts[other.ID])

	require.NoError(t, repo.DeletePostTree(ctx, reply))
	posts, err := repo.ListPosts(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, root.ID, posts[0].ID)

	var likes int64
	f.DB.Model(&model.Like{}).Count(&likes)
	assert.Zero(t, likes)
}

func TestCourseRepository_DeleteCascades(t *testing.T) {
	f := testutil.NewFixture(t)
	courses := NewCourseRepository(f.DB)
	quizzes := NewQuizRepository(f.DB)
	discussions := NewDiscussionRepository(f.DB)
	ctx := context.Background()

	quiz := createQuiz(t, f.DB, f.Course.ID)
	addQuestion(t, quizzes, quiz.ID, model.TrueFalse)
	require.NoError(t, discussions.CreateWithFirstPost(ctx,
		&model.Discussion{Title: "T", CourseID: f.Course.ID, UserID: f.Teacher.ID},
		&model.Post{Content: "c", UserID: f.Teacher.ID}))

	require.NoError(t, courses.Delete(ctx, f.Course.ID))

	for _, m := range []interface{}{&model.Course{}, &model.Quiz{}, &model.Question{}, &model.Option{}, &model.Discussion{}, &model.Post{}} {
		var count int64
		require.NoError(t, f.DB.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
	ok, err := courses.IsEnrolled(ctx, f.Course.ID, f.Student.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
