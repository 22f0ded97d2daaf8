package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"aldudu_backend/internal/model"
	"aldudu_backend/internal/testutil"
	"aldudu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	card, err := s.Courses.Create(ctx, s.teacher(), CreateCourseInput{Name: "  Biologi <b>XI</b> ", AcademicYearID: float64(s.Year.ID)})
	require.NoError(t, err)
	assert.Equal(t, "Biologi XI", card.Name)
	assert.Len(t, card.ClassCode, util.ClassCodeLength)
	assert.True(t, util.IsValidClassCode(card.ClassCode))
	assert.Equal(t, model.DefaultCourseColor, card.Color)
	assert.Equal(t, "Bapak Budi", card.Teacher)
	assert.True(t, card.IsTeacher)
	assert.EqualValues(t, 0, card.StudentCount)

	t.Run("academic year as string", func(t *testing.T) {
		_, err := s.Courses.Create(ctx, s.teacher(), CreateCourseInput{Name: "Kimia", AcademicYearID: fmt.Sprint(s.Year.ID)})
		assert.NoError(t, err)
	})

	t.Run("student cannot create", func(t *testing.T) {
		_, err := s.Courses.Create(ctx, s.student(), CreateCourseInput{Name: "Fisika", AcademicYearID: float64(s.Year.ID)})
		assert.ErrorIs(t, err, util.ErrNotTeacher)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := s.Courses.Create(ctx, s.teacher(), CreateCourseInput{Name: "  ", AcademicYearID: float64(s.Year.ID)})
		assert.ErrorIs(t, err, util.ErrValidation)
	})

	t.Run("bad academic year", func(t *testing.T) {
		for _, year := range []interface{}{nil, "abc", float64(-1), float64(999), 1.5} {
			_, err := s.Courses.Create(ctx, s.teacher(), CreateCourseInput{Name: "Fisika", AcademicYearID: year})
			assert.ErrorIs(t, err, util.ErrValidation, "year %v", year)
		}
	})
}

func TestUpdateCourse(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	name := "Matematika Lanjut"
	color := "#10b981"
	card, err := s.Courses.Update(ctx, s.teacher(), s.Course.ID, UpdateCourseInput{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, name, card.Name)
	assert.Equal(t, color, card.Color)
	assert.EqualValues(t, 1, card.StudentCount)

	bad := "blue"
	_, err = s.Courses.Update(ctx, s.teacher(), s.Course.ID, UpdateCourseInput{Color: &bad})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = s.Courses.Update(ctx, s.student(), s.Course.ID, UpdateCourseInput{Name: &name})
	assert.ErrorIs(t, err, util.ErrNotCourseTeacher)

	_, err = s.Courses.Update(ctx, s.teacher(), 999, UpdateCourseInput{Name: &name})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestEnroll(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	card, err := s.Courses.Enroll(ctx, s.outsider(), " mat11a ")
	require.NoError(t, err)
	assert.Equal(t, s.Course.ID, card.ID)
	assert.False(t, card.IsTeacher)
	assert.EqualValues(t, 2, card.StudentCount)

	tests := []struct {
		name  string
		actor Actor
		code  string
		want  error
	}{
		{"teacher", s.teacher(), "MAT11A", util.ErrNotStudent},
		{"bad format", s.student(), "AB-1", util.ErrInvalidClassCode},
		{"unknown code", s.student(), "ZZZZZZ", util.ErrClassCodeNotFound},
		{"already enrolled", s.student(), "MAT11A", util.ErrAlreadyEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Courses.Enroll(ctx, tt.actor, tt.code)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err = s.Courses.Enroll(ctx, s.student(), "MAT11A")
	assert.ErrorIs(t, err, util.ErrConflict)
	assert.NotErrorIs(t, err, util.ErrNotFound)
}

func TestInitialDataAndCoursesForYear(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	old := testutil.CreateYear(t, s.DB, "2024/2023", false)
	testutil.CreateCourse(t, s.DB, "Sejarah X-B", "SEJ10B", s.Teacher, old)

	data, err := s.Courses.InitialData(ctx, s.teacher())
	require.NoError(t, err)
	require.Len(t, data.AcademicYears, 2)
	assert.Equal(t, "2025/2026", data.AcademicYears[0].Year)
	require.Len(t, data.Courses, 1)
	assert.Equal(t, "Matematika XI-A", data.Courses[0].Name)

	studentData, err := s.Courses.InitialData(ctx, s.student())
	require.NoError(t, err)
	assert.Len(t, studentData.Courses, 1)

	outsiderData, err := s.Courses.InitialData(ctx, s.outsider())
	require.NoError(t, err)
	assert.Empty(t, outsiderData.Courses)

	courses, err := s.Courses.CoursesForYear(ctx, s.teacher(), old.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "SEJ10B", courses[0].ClassCode)
}

func TestCourseDetail(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	s.newQuiz(t, "Kuis 1")
	_, err := s.Materials.AddLink(ctx, s.teacher(), s.Course.ID, "Referensi", "https://example.com")
	require.NoError(t, err)

	detail, err := s.Courses.Detail(ctx, s.student(), s.Course.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Quizzes, 1)
	assert.Len(t, detail.Links, 1)
	assert.Empty(t, detail.Files)
	assert.False(t, detail.Course.IsTeacher)

	_, err = s.Courses.Detail(ctx, s.outsider(), s.Course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestDeleteCourse(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Courses.Delete(ctx, s.student(), s.Course.ID), util.ErrNotCourseTeacher)
	require.NoError(t, s.Courses.Delete(ctx, s.teacher(), s.Course.ID))

	_, err := s.Courses.Detail(ctx, s.teacher(), s.Course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
