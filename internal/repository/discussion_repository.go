package repository

import (
	"aldudu_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type DiscussionRepository struct {
	DB *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: db}
}

// CreateWithFirstPost 讨论与首帖在同一事务中创建
func (r *DiscussionRepository) CreateWithFirstPost(ctx context.Context, discussion *model.Discussion, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(discussion).Error; err != nil {
			return err
		}
		post.DiscussionID = discussion.ID
		return tx.Create(post).Error
	})
}

// ListByCourse 最新创建的在前
func (r *DiscussionRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Discussion, error) {
	var discussions []model.Discussion
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC, id DESC").
		Find(&discussions).Error
	return discussions, err
}

// CountPosts 返回 discussionID -> 帖子数
func (r *DiscussionRepository) CountPosts(ctx context.Context, discussionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(discussionIDs))
	if len(discussionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DiscussionID uint
		Total        int64
	}
	err := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Select("discussion_id, COUNT(*) AS total").
		Where("discussion_id IN ?", discussionIDs).
		Group("discussion_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.DiscussionID] = row.Total
	}
	return counts, nil
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id uint) (*model.Discussion, error) {
	var discussion model.Discussion
	err := r.DB.WithContext(ctx).Preload("User").First(&discussion, id).Error
	return &discussion, err
}

func (r *DiscussionRepository) Close(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).
		Model(&model.Discussion{BaseModel: model.BaseModel{ID: id}}).
		Update("closed", true).Error
}

// CreatePost 回复的父帖必须属于同一讨论
func (r *DiscussionRepository) CreatePost(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.ParentID != nil {
			var count int64
			if err := tx.Model(&model.Post{}).
				Where("id = ? AND discussion_id = ?", *post.ParentID, post.DiscussionID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrParentMismatch
			}
		}
		return tx.Create(post).Error
	})
}

func (r *DiscussionRepository) FindPost(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("User").Preload("Discussion").First(&post, id).Error
	return &post, err
}

// ListPosts 按时间正序，附带点赞用户
func (r *DiscussionRepository) ListPosts(ctx context.Context, discussionID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Likes.User").
		Where("discussion_id = ?", discussionID).
		Order("created_at, id").
		Find(&posts).Error
	return posts, err
}

func (r *DiscussionRepository) UpdatePostContent(ctx context.Context, id uint, content string) error {
	return r.DB.WithContext(ctx).
		Model(&model.Post{BaseModel: model.BaseModel{ID: id}}).
		Update("content", content).Error
}

// DeletePostTree 删除帖子及其所有后代回复和点赞
func (r *DiscussionRepository) DeletePostTree(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uint{post.ID}
		frontier := []uint{post.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&model.Post{}).
				Where("discussion_id = ? AND parent_id IN ?", post.DiscussionID, frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		return deletePostsTx(tx, ids)
	})
}

// ToggleLike 已点赞则取消，否则点赞；返回当前是否点赞及点赞总数
func (r *DiscussionRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, int64, error) {
	var liked bool
	var total int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(&model.Like{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&model.Like{}).Where("post_id = ?", postID).Count(&total).Error
	})
	return liked, total, err
}

func (r *DiscussionRepository) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}
