package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"aldudu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinks(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	link, err := s.Materials.AddLink(ctx, s.teacher(), s.Course.ID, "Modul", " https://example.com/modul ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/modul", link.URL)

	_, err = s.Materials.AddLink(ctx, s.teacher(), s.Course.ID, "Modul", "ftp://example.com")
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = s.Materials.AddLink(ctx, s.teacher(), s.Course.ID, "", "https://example.com")
	assert.ErrorIs(t, err, util.ErrValidation)
	_, err = s.Materials.AddLink(ctx, s.student(), s.Course.ID, "Modul", "https://example.com")
	assert.ErrorIs(t, err, util.ErrNotCourseTeacher)

	assert.ErrorIs(t, s.Materials.DeleteLink(ctx, s.student(), link.ID), util.ErrNotCourseTeacher)
	require.NoError(t, s.Materials.DeleteLink(ctx, s.teacher(), link.ID))
	assert.ErrorIs(t, s.Materials.DeleteLink(ctx, s.teacher(), link.ID), util.ErrLinkNotFound)
}

func TestFileVisibilityWindow(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	tomorrow := time.Now().Add(24 * time.Hour).Format(util.DateFormat)
	file, err := s.Materials.AddFile(ctx, s.teacher(), s.Course.ID, FileUpload{
		Name:        "Materi Bab 2",
		StartDate:   tomorrow,
		Filename:    "bab 2.pdf",
		Size:        5,
		ContentType: "application/pdf",
		Reader:      strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bab_2.pdf", file.Filename)
	assert.False(t, file.Available)

	_, _, err = s.Materials.OpenFile(ctx, s.student(), file.ID)
	assert.ErrorIs(t, err, util.ErrFileNotAvailable)
	_, _, err = s.Materials.OpenFile(ctx, s.outsider(), file.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	stored, reader, err := s.Materials.OpenFile(ctx, s.teacher(), file.ID)
	require.NoError(t, err)
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Contains(t, stored.ObjectName, "files/")

	detail, err := s.Courses.Detail(ctx, s.student(), s.Course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Files, 1)
	assert.False(t, detail.Files[0].Available)

	assert.ErrorIs(t, s.Materials.DeleteFile(ctx, s.student(), file.ID), util.ErrNotCourseTeacher)
	require.NoError(t, s.Materials.DeleteFile(ctx, s.teacher(), file.ID))
	exists, err := s.Materials.Storage.Provider.Exists(ctx, stored.ObjectName)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAddFileValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.Materials.AddFile(ctx, s.teacher(), s.Course.ID, FileUpload{Filename: "", Reader: strings.NewReader("")})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = s.Materials.AddFile(ctx, s.teacher(), s.Course.ID, FileUpload{
		Filename:  "a.txt",
		StartDate: "2026-02-01",
		EndDate:   "2026-01-01",
		Reader:    strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, util.ErrValidation)
}
