package repository

import (
	"aldudu_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// MaterialRepository 课程链接与文件
type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) CreateLink(ctx context.Context, link *model.Link) error {
	return r.DB.WithContext(ctx).Create(link).Error
}

func (r *MaterialRepository) FindLink(ctx context.Context, id uint) (*model.Link, error) {
	var link model.Link
	err := r.DB.WithContext(ctx).First(&link, id).Error
	return &link, err
}

func (r *MaterialRepository) DeleteLink(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Link{}, id).Error
}

func (r *MaterialRepository) ListLinks(ctx context.Context, courseID uint) ([]model.Link, error) {
	var links []model.Link
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC, id DESC").Find(&links).Error
	return links, err
}

func (r *MaterialRepository) CreateFile(ctx context.Context, file *model.CourseFile) error {
	return r.DB.WithContext(ctx).Create(file).Error
}

func (r *MaterialRepository) FindFile(ctx context.Context, id uint) (*model.CourseFile, error) {
	var file model.CourseFile
	err := r.DB.WithContext(ctx).First(&file, id).Error
	return &file, err
}

func (r *MaterialRepository) DeleteFile(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.CourseFile{}, id).Error
}

func (r *MaterialRepository) ListFiles(ctx context.Context, courseID uint) ([]model.CourseFile, error) {
	var files []model.CourseFile
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC, id DESC").Find(&files).Error
	return files, err
}
