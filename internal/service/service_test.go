package service

import (
	"context"
	"testing"
	"time"

	"aldudu_backend/internal/config"
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/testutil"

	"github.com/stretchr/testify/require"
)

type services struct {
	*testutil.Fixture
	Cfg         *config.Config
	Auth        *AuthService
	Courses     *CourseService
	Quizzes     *QuizService
	Submissions *SubmissionService
	Materials   *MaterialService
	Discussions *DiscussionService
	Seed        *SeedService
}

func newServices(t *testing.T) *services {
	t.Helper()
	f := testutil.NewFixture(t)

	cfg := &config.Config{
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(f.DB)
	courseRepo := repository.NewCourseRepository(f.DB)
	quizRepo := repository.NewQuizRepository(f.DB)
	materialRepo := repository.NewMaterialRepository(f.DB)
	submissionRepo := repository.NewSubmissionRepository(f.DB)
	discussionRepo := repository.NewDiscussionRepository(f.DB)
	access := NewAccess(courseRepo)

	s := &services{Fixture: f, Cfg: cfg}
	s.Auth = NewAuthService(userRepo, NewMemoryTokenBlacklist(), cfg)
	s.Courses = NewCourseService(courseRepo, quizRepo, materialRepo, access, storage)
	s.Quizzes = NewQuizService(quizRepo, access, storage)
	s.Submissions = NewSubmissionService(quizRepo, submissionRepo, access)
	s.Materials = NewMaterialService(materialRepo, access, storage)
	s.Discussions = NewDiscussionService(discussionRepo, access)
	s.Seed = NewSeedService(userRepo, courseRepo, s.Courses)
	return s
}

func actorOf(u *model.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

func (s *services) teacher() Actor { return actorOf(s.Teacher) }

func (s *services) student() Actor { return actorOf(s.Student) }

func (s *services) outsider() Actor { return actorOf(s.Outsider) }

// newQuiz 在 fixture 课程下创建测验
func (s *services) newQuiz(t *testing.T, name string) *QuizSummary {
	t.Helper()
	quiz, err := s.Quizzes.CreateQuiz(context.Background(), s.teacher(), s.Course.ID, CreateQuizInput{Name: name})
	require.NoError(t, err)
	return quiz
}

// newChoiceQuestion 创建含两个选项的单选题，correct 为正确选项下标
func (s *services) newChoiceQuestion(t *testing.T, quizID uint, correct int) *QuestionView {
	t.Helper()
	ctx := context.Background()
	q, err := s.Quizzes.AddQuestion(ctx, s.teacher(), quizID, "multiple_choice")
	require.NoError(t, err)
	_, err = s.Quizzes.AddOption(ctx, s.teacher(), q.ID)
	require.NoError(t, err)

	q, err = s.Quizzes.questionFragment(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, q.Options, 2)

	q, err = s.Quizzes.SetCorrect(ctx, s.teacher(), q.ID, q.Options[correct].ID)
	require.NoError(t, err)
	return q
}
