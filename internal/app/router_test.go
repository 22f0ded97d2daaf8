package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aldudu_backend/internal/config"
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	*testutil.Fixture
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := testutil.NewFixture(t)

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Upload:  config.UploadConfig{MaxSizeMB: 1},
	}
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.JWT.CookieName = "aldudu_token"

	a, err := New(cfg, f.DB, service.NewMemoryTokenBlacklist())
	require.NoError(t, err)
	return &testServer{Fixture: f, app: a}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestHealthAndSession(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAuthenticated":false}`, string(env.Data))

	token := s.login(t, "guru@aldudu.com")
	_, env = s.do(t, http.MethodGet, "/api/session", token, nil)
	var session struct {
		IsAuthenticated bool `json:"isAuthenticated"`
		User            struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, env, &session)
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "Bapak Budi", session.User.Name)
	assert.Equal(t, "teacher", session.User.Role)

	w, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "guru@aldudu.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "not-an-email", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/initial-data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t, "murid@aldudu.com")
	w, _ = s.do(t, http.MethodGet, "/api/initial-data", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/initial-data", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEnrollGating(t *testing.T) {
	s := newTestServer(t)
	teacher := s.login(t, "guru@aldudu.com")
	outsider := s.login(t, "andi@aldudu.com")

	w, _ := s.do(t, http.MethodPost, "/api/enroll", teacher, gin.H{"class_code": "MAT11A"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/enroll", outsider, gin.H{"class_code": "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/enroll", outsider, gin.H{"class_code": "ZZZZZZ"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/courses/%d", s.Course.ID), outsider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/enroll", outsider, gin.H{"class_code": " mat11a "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var card struct {
		Name string `json:"name"`
	}
	decode(t, env, &card)
	assert.Equal(t, "Matematika XI-A", card.Name)

	w, _ = s.do(t, http.MethodPost, "/api/enroll", outsider, gin.H{"class_code": "MAT11A"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/courses/%d", s.Course.ID), outsider, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 学生不能创建课程
	w, _ = s.do(t, http.MethodPost, "/api/courses", outsider, gin.H{"name": "Fisika", "academic_year_id": s.Year.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/courses", teacher, gin.H{"name": "Fisika", "academic_year_id": s.Year.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestQuizBuildAndSubmit(t *testing.T) {
	s := newTestServer(t)
	teacher := s.login(t, "guru@aldudu.com")
	student := s.login(t, "murid@aldudu.com")

	w, env := s.do(t, http.MethodPost, fmt.Sprintf("/api/courses/%d/quizzes", s.Course.ID), teacher, gin.H{"name": "Kuis Aljabar"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var quiz struct {
		ID     uint `json:"id"`
		Points int  `json:"points"`
	}
	decode(t, env, &quiz)
	assert.Equal(t, 100, quiz.Points)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/courses/%d/quizzes", s.Course.ID), student, gin.H{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/quiz/%d/question/add", quiz.ID), teacher, gin.H{"question_type": "multiple_choice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var question struct {
		ID           uint   `json:"id"`
		QuestionText string `json:"question_text"`
		Options      []struct {
			ID uint `json:"id"`
		} `json:"options"`
	}
	decode(t, env, &question)
	assert.Equal(t, "Pertanyaan Baru 1", question.QuestionText)
	require.Len(t, question.Options, 1)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/question/%d/option/add", question.ID), teacher, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var option struct {
		ID         uint   `json:"id"`
		OptionText string `json:"option_text"`
	}
	decode(t, env, &option)
	assert.Equal(t, "Opsi 2", option.OptionText)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/question/%d/set-correct", question.ID), teacher, gin.H{"option_id": option.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 最后一个选项不能删除之前，先删掉第一个
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/option/%d/delete", question.Options[0].ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/option/%d/delete", option.ID), teacher, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 学生看不到正确答案
	_, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d", quiz.ID), student, nil)
	assert.NotContains(t, string(env.Data), "is_correct")

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), teacher, gin.H{
		"answers": []gin.H{{"question_id": question.ID, "selected_option_id": option.ID}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), student, gin.H{
		"answers": []gin.H{{"question_id": question.ID, "selected_option_id": option.ID}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Score          float64 `json:"score"`
		TotalQuestions int     `json:"total_questions"`
		CorrectAnswers int     `json:"correct_answers"`
	}
	decode(t, env, &result)
	assert.InDelta(t, 100.0, result.Score, 0.001)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), student, gin.H{
		"answers": []gin.H{{"question_id": question.ID, "selected_option_id": option.ID}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "quiz already submitted", env.Message)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d/submission", quiz.ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		IsTeacher   bool `json:"is_teacher"`
		Submissions []struct {
			Score float64 `json:"score"`
		} `json:"submissions"`
	}
	decode(t, env, &view)
	assert.True(t, view.IsTeacher)
	require.Len(t, view.Submissions, 1)
}

func TestBuilderAcceptsForm(t *testing.T) {
	s := newTestServer(t)
	teacher := s.login(t, "guru@aldudu.com")

	_, env := s.do(t, http.MethodPost, fmt.Sprintf("/api/courses/%d/quizzes", s.Course.ID), teacher, gin.H{"name": "Kuis"})
	var quiz struct {
		ID uint `json:"id"`
	}
	decode(t, env, &quiz)

	_, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/quiz/%d/question/add", quiz.ID), teacher, gin.H{"question_type": "true_false"})
	var question struct {
		ID      uint `json:"id"`
		Options []struct {
			ID uint `json:"id"`
		} `json:"options"`
	}
	decode(t, env, &question)
	require.Len(t, question.Options, 2)

	form := fmt.Sprintf("correct_option_q%d=%d", question.ID, question.Options[1].ID)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/question/%d/set-correct", question.ID), bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w, env := s.send(t, req, teacher)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Options []struct {
			ID        uint  `json:"id"`
			IsCorrect *bool `json:"is_correct"`
		} `json:"options"`
	}
	decode(t, env, &updated)
	require.Len(t, updated.Options, 2)
	assert.False(t, *updated.Options[0].IsCorrect)
	assert.True(t, *updated.Options[1].IsCorrect)

	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/question/%d/update", question.ID), bytes.NewBufferString("question_text=Bumi+itu+bulat"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w, env = s.send(t, req, teacher)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Bumi itu bulat")

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/question/%d/change-type", question.ID), teacher, gin.H{"question_type": "essay"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscussionFlow(t *testing.T) {
	s := newTestServer(t)
	teacher := s.login(t, "guru@aldudu.com")
	student := s.login(t, "murid@aldudu.com")
	outsider := s.login(t, "andi@aldudu.com")

	w, env := s.do(t, http.MethodPost, fmt.Sprintf("/api/courses/%d/discussions", s.Course.ID), teacher, gin.H{
		"title": "Tugas minggu ini", "content": "Silakan bertanya di sini",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var discussion struct {
		ID        uint  `json:"id"`
		PostCount int64 `json:"post_count"`
	}
	decode(t, env, &discussion)
	assert.Equal(t, int64(1), discussion.PostCount)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/discussions/%d/posts", discussion.ID), outsider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/discussions/%d/posts", discussion.ID), student, gin.H{"content": "Baik, Pak"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID uint `json:"id"`
	}
	decode(t, env, &post)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"action":"liked","likes":1}`, string(env.Data))

	_, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), teacher, nil)
	assert.JSONEq(t, `{"action":"unliked","likes":0}`, string(env.Data))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), teacher, gin.H{"content": "diubah"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/discussions/%d/close", discussion.ID), student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/discussions/%d/close", discussion.ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/discussions/%d/posts", discussion.ID), student, gin.H{"content": "terlambat"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/posts/999999/like", teacher, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseFileDownload(t *testing.T) {
	s := newTestServer(t)
	teacher := s.login(t, "guru@aldudu.com")
	student := s.login(t, "murid@aldudu.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Modul 1"))
	part, err := mw.CreateFormFile("file", "modul 1.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("isi modul"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/courses/%d/files", s.Course.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, env := s.send(t, req, teacher)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var file struct {
		ID        uint `json:"id"`
		Available bool `json:"available"`
	}
	decode(t, env, &file)
	assert.True(t, file.Available)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d", file.ID), student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "isi modul", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/files/%d", file.ID), student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/files/%d", file.ID), teacher, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d", file.ID), student, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
