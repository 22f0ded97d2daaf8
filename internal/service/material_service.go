package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaterialService 课程链接与文件
type MaterialService struct {
	MaterialRepo *repository.MaterialRepository
	Access       *Access
	Storage      *StorageService
}

func NewMaterialService(materialRepo *repository.MaterialRepository, access *Access, storage *StorageService) *MaterialService {
	return &MaterialService{MaterialRepo: materialRepo, Access: access, Storage: storage}
}

type FileUpload struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

func (s *MaterialService) ownedCourse(ctx context.Context, actor Actor, courseID uint) (*model.Course, error) {
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireCourseTeacher(course, actor); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *MaterialService) AddLink(ctx context.Context, actor Actor, courseID uint, name, url string) (*model.Link, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	name = util.SanitizeText(name, util.MaxLinkNameLen)
	if name == "" {
		return nil, util.Invalid("link name is required")
	}
	url = strings.TrimSpace(url)
	if !util.IsHTTPURL(url) {
		return nil, util.Invalid("link must start with http:// or https://")
	}

	link := &model.Link{Name: name, URL: url, CourseID: courseID}
	if err := s.MaterialRepo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *MaterialService) DeleteLink(ctx context.Context, actor Actor, linkID uint) error {
	link, err := s.MaterialRepo.FindLink(ctx, linkID)
	if err != nil {
		return notFound(err, util.ErrLinkNotFound)
	}
	if _, err := s.ownedCourse(ctx, actor, link.CourseID); err != nil {
		return err
	}
	return s.MaterialRepo.DeleteLink(ctx, linkID)
}

// AddFile 文件存放在 files/{course_id} 下，开始时间晚于结束时间视为无效
func (s *MaterialService) AddFile(ctx context.Context, actor Actor, courseID uint, upload FileUpload) (*FileView, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return nil, util.Invalid("no file selected")
	}

	name := util.SanitizeText(upload.Name, util.MaxFileNameLen)
	if name == "" {
		name = util.SanitizeText(upload.Filename, util.MaxFileNameLen)
	}
	start := util.ParseOptionalTime(upload.StartDate)
	end := util.ParseOptionalTime(upload.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		return nil, util.Invalid("end date must be after start date")
	}

	dir := fmt.Sprintf("files/%d", courseID)
	objectName, err := s.Storage.Store(ctx, dir, upload.Filename, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return nil, err
	}

	file := &model.CourseFile{
		Name:         name,
		ObjectName:   objectName,
		OriginalName: util.SecureFilename(upload.Filename),
		ContentType:  upload.ContentType,
		Size:         upload.Size,
		CourseID:     courseID,
		StartDate:    start,
		EndDate:      end,
	}
	if description := util.SanitizeText(upload.Description, util.MaxDescriptionLen); description != "" {
		file.Description = &description
	}

	if err := s.MaterialRepo.CreateFile(ctx, file); err != nil {
		if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
			logger.Log.Warn("Failed to clean up stored file", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}
	view := fileView(file, time.Now())
	return &view, nil
}

// OpenFile 任课老师随时可下载，学生只能在开放时间内下载
func (s *MaterialService) OpenFile(ctx context.Context, actor Actor, fileID uint) (*model.CourseFile, io.ReadCloser, error) {
	file, err := s.MaterialRepo.FindFile(ctx, fileID)
	if err != nil {
		return nil, nil, notFound(err, util.ErrFileNotFound)
	}
	course, err := s.Access.Course(ctx, file.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Access.RequireViewer(ctx, course, actor); err != nil {
		return nil, nil, err
	}
	if !s.Access.IsCourseTeacher(course, actor) && !file.VisibleAt(time.Now()) {
		return nil, nil, util.ErrFileNotAvailable
	}

	reader, err := s.Storage.Open(ctx, file.ObjectName)
	if err != nil {
		return nil, nil, err
	}
	return file, reader, nil
}

func (s *MaterialService) DeleteFile(ctx context.Context, actor Actor, fileID uint) error {
	file, err := s.MaterialRepo.FindFile(ctx, fileID)
	if err != nil {
		return notFound(err, util.ErrFileNotFound)
	}
	if _, err := s.ownedCourse(ctx, actor, file.CourseID); err != nil {
		return err
	}
	if err := s.MaterialRepo.DeleteFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, file.ObjectName); err != nil {
		logger.Log.Warn("Failed to delete stored file", zap.String("object", file.ObjectName), zap.Error(err))
	}
	return nil
}
