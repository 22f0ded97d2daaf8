package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/logger"
	"aldudu_backend/pkg/monitoring"
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	LikeActionLiked   = "liked"
	LikeActionUnliked = "unliked"
)

type DiscussionService struct {
	DiscussionRepo *repository.DiscussionRepository
	Access         *Access
}

func NewDiscussionService(discussionRepo *repository.DiscussionRepository, access *Access) *DiscussionService {
	return &DiscussionService{DiscussionRepo: discussionRepo, Access: access}
}

func (s *DiscussionService) viewableCourse(ctx context.Context, actor Actor, courseID uint) (*model.Course, error) {
	course, err := s.Access.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Access.RequireViewer(ctx, course, actor); err != nil {
		return nil, err
	}
	return course, nil
}

// viewableDiscussion 讨论的可见性由所属课程决定
func (s *DiscussionService) viewableDiscussion(ctx context.Context, actor Actor, discussionID uint) (*model.Discussion, error) {
	discussion, err := s.DiscussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, notFound(err, util.ErrDiscussionNotFound)
	}
	if _, err := s.viewableCourse(ctx, actor, discussion.CourseID); err != nil {
		return nil, err
	}
	return discussion, nil
}

func (s *DiscussionService) findPost(ctx context.Context, postID uint) (*model.Post, error) {
	post, err := s.DiscussionRepo.FindPost(ctx, postID)
	if err != nil {
		return nil, notFound(err, util.ErrPostNotFound)
	}
	return post, nil
}

func discussionView(d *model.Discussion, actor Actor, posts int64) DiscussionView {
	return DiscussionView{
		ID:        d.ID,
		CourseID:  d.CourseID,
		Title:     d.Title,
		Closed:    d.Closed,
		User:      userRef(d.User),
		PostCount: posts,
		CreatedAt: d.CreatedAt,
		CanClose:  !d.Closed && CanOnDiscussion(ActionCloseDiscussion, actor, d, nil),
	}
}

func postView(p *model.Post, discussion *model.Discussion, actor Actor) PostView {
	v := PostView{
		ID:        p.ID,
		Content:   p.Content,
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
		User:      userRef(p.User),
		Likes:     make([]LikeView, 0, len(p.Likes)),
		CanEdit:   CanOnDiscussion(ActionEditPost, actor, discussion, p),
		CanDelete: CanOnDiscussion(ActionDeletePost, actor, discussion, p),
	}
	for _, l := range p.Likes {
		v.Likes = append(v.Likes, LikeView{User: userRef(l.User)})
	}
	return v
}

// Create 讨论与首帖在同一事务中创建
func (s *DiscussionService) Create(ctx context.Context, actor Actor, courseID uint, title, content string) (*DiscussionView, error) {
	if _, err := s.viewableCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	title = util.SanitizeText(title, util.MaxDiscussionTitleLen)
	content = util.SanitizeText(content, util.MaxPostContentLen)
	if title == "" || content == "" {
		return nil, util.Invalid("title and content are required")
	}

	discussion := &model.Discussion{Title: title, CourseID: courseID, UserID: actor.UserID}
	post := &model.Post{Content: content, UserID: actor.UserID}
	if err := s.DiscussionRepo.CreateWithFirstPost(ctx, discussion, post); err != nil {
		return nil, err
	}
	monitoring.RecordPost()
	logger.Log.Info("Discussion created", zap.Uint("discussion_id", discussion.ID), zap.Uint("course_id", courseID))

	created, err := s.DiscussionRepo.FindByID(ctx, discussion.ID)
	if err != nil {
		return nil, err
	}
	view := discussionView(created, actor, 1)
	return &view, nil
}

// List 最新的讨论在前
func (s *DiscussionService) List(ctx context.Context, actor Actor, courseID uint) ([]DiscussionView, error) {
	if _, err := s.viewableCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	discussions, err := s.DiscussionRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(discussions))
	for _, d := range discussions {
		ids = append(ids, d.ID)
	}
	counts, err := s.DiscussionRepo.CountPosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]DiscussionView, 0, len(discussions))
	for i := range discussions {
		views = append(views, discussionView(&discussions[i], actor, counts[discussions[i].ID]))
	}
	return views, nil
}

func (s *DiscussionService) Get(ctx context.Context, actor Actor, discussionID uint) (*DiscussionView, error) {
	discussion, err := s.viewableDiscussion(ctx, actor, discussionID)
	if err != nil {
		return nil, err
	}
	counts, err := s.DiscussionRepo.CountPosts(ctx, []uint{discussion.ID})
	if err != nil {
		return nil, err
	}
	view := discussionView(discussion, actor, counts[discussion.ID])
	return &view, nil
}

// Posts 按时间正序
func (s *DiscussionService) Posts(ctx context.Context, actor Actor, discussionID uint) ([]PostView, error) {
	discussion, err := s.viewableDiscussion(ctx, actor, discussionID)
	if err != nil {
		return nil, err
	}
	posts, err := s.DiscussionRepo.ListPosts(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, postView(&posts[i], discussion, actor))
	}
	return views, nil
}

// AddPost 已关闭的讨论不再接受任何人的帖子
func (s *DiscussionService) AddPost(ctx context.Context, actor Actor, discussionID uint, content string, parentID *uint) (*PostView, error) {
	discussion, err := s.viewableDiscussion(ctx, actor, discussionID)
	if err != nil {
		return nil, err
	}
	if discussion.Closed {
		return nil, util.ErrDiscussionClosed
	}

	content = util.SanitizeText(content, util.MaxPostContentLen)
	if content == "" {
		return nil, util.Invalid("content is required")
	}

	post := &model.Post{
		Content:      content,
		DiscussionID: discussionID,
		UserID:       actor.UserID,
		ParentID:     parentID,
	}
	if err := s.DiscussionRepo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrParentMismatch) {
			return nil, util.Invalid("parent post does not belong to this discussion")
		}
		return nil, err
	}
	monitoring.RecordPost()

	created, err := s.findPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view := postView(created, discussion, actor)
	return &view, nil
}

// EditPost 只有作者可以编辑
func (s *DiscussionService) EditPost(ctx context.Context, actor Actor, postID uint, content string) (*PostView, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !CanOnDiscussion(ActionEditPost, actor, post.Discussion, post) {
		return nil, util.NewError(util.ErrPermissionDenied, "only the author can edit this post")
	}

	content = util.SanitizeText(content, util.MaxPostContentLen)
	if content == "" {
		return nil, util.Invalid("content is required")
	}
	if err := s.DiscussionRepo.UpdatePostContent(ctx, postID, content); err != nil {
		return nil, err
	}
	post.Content = content
	view := postView(post, post.Discussion, actor)
	return &view, nil
}

// DeletePost 作者或讨论发起人可以删除，回复一并删除
func (s *DiscussionService) DeletePost(ctx context.Context, actor Actor, postID uint) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if !CanOnDiscussion(ActionDeletePost, actor, post.Discussion, post) {
		return util.NewError(util.ErrPermissionDenied, "you cannot delete this post")
	}
	return s.DiscussionRepo.DeletePostTree(ctx, post)
}

// Close 只有发起人可以关闭，关闭后不可重新打开
func (s *DiscussionService) Close(ctx context.Context, actor Actor, discussionID uint) (*DiscussionView, error) {
	discussion, err := s.DiscussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, notFound(err, util.ErrDiscussionNotFound)
	}
	if !CanOnDiscussion(ActionCloseDiscussion, actor, discussion, nil) {
		return nil, util.NewError(util.ErrPermissionDenied, "only the creator can close this discussion")
	}
	if !discussion.Closed {
		if err := s.DiscussionRepo.Close(ctx, discussionID); err != nil {
			return nil, err
		}
		discussion.Closed = true
	}
	counts, err := s.DiscussionRepo.CountPosts(ctx, []uint{discussionID})
	if err != nil {
		return nil, err
	}
	view := discussionView(discussion, actor, counts[discussionID])
	return &view, nil
}

// ToggleLike 已点赞则取消
func (s *DiscussionService) ToggleLike(ctx context.Context, actor Actor, postID uint) (*LikeResult, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	liked, total, err := s.DiscussionRepo.ToggleLike(ctx, postID, actor.UserID)
	if err != nil {
		return nil, err
	}

	action := LikeActionUnliked
	if liked {
		action = LikeActionLiked
	}
	monitoring.RecordLikeToggle(action)
	return &LikeResult{Action: action, Likes: total}, nil
}
