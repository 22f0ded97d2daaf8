package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DiscussionController 课程讨论区
type DiscussionController struct {
	DiscussionService *service.DiscussionService
}

func NewDiscussionController(discussionService *service.DiscussionService) *DiscussionController {
	return &DiscussionController{DiscussionService: discussionService}
}

// CreateDiscussionRequest 发起讨论，content 作为首帖
// swagger:model CreateDiscussionRequest
type CreateDiscussionRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PostRequest 回复或编辑帖子
// swagger:model PostRequest
type PostRequest struct {
	Content  string `json:"content" form:"content"`
	ParentID *uint  `json:"parent_id" form:"parent_id"`
}

// CreateDiscussion godoc
// @Summary 发起讨论
// @Tags 讨论区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body CreateDiscussionRequest true "讨论"
// @Success 201 {object} util.Response{data=service.DiscussionView} "成功"
// @Failure 400 {object} util.Response "标题或内容为空"
// @Failure 403 {object} util.Response "无权访问课程"
// @Router /api/courses/{id}/discussions [post]
func (c *DiscussionController) CreateDiscussion(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CreateDiscussionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	discussion, err := c.DiscussionService.Create(ctx.Request.Context(), actor(ctx), courseID, req.Title, req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, discussion)
}

// ListDiscussions godoc
// @Summary 课程讨论列表
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.DiscussionView} "成功"
// @Router /api/courses/{id}/discussions [get]
func (c *DiscussionController) ListDiscussions(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	discussions, err := c.DiscussionService.List(ctx.Request.Context(), actor(ctx), courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, discussions)
}

// GetDiscussion godoc
// @Summary 讨论详情
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "讨论ID"
// @Success 200 {object} util.Response{data=service.DiscussionView} "成功"
// @Failure 404 {object} util.Response "讨论不存在"
// @Router /api/discussions/{id} [get]
func (c *DiscussionController) GetDiscussion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	discussion, err := c.DiscussionService.Get(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, discussion)
}

// ListPosts godoc
// @Summary 讨论帖子列表
// @Description 按发帖时间排序，parent_id 表示回复关系
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "讨论ID"
// @Success 200 {object} util.Response{data=[]service.PostView} "成功"
// @Router /api/discussions/{id}/posts [get]
func (c *DiscussionController) ListPosts(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	posts, err := c.DiscussionService.Posts(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// AddPost godoc
// @Summary 回复讨论
// @Tags 讨论区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "讨论ID"
// @Param   body body PostRequest true "帖子"
// @Success 201 {object} util.Response{data=service.PostView} "成功"
// @Failure 403 {object} util.Response "讨论已关闭"
// @Router /api/discussions/{id}/posts [post]
func (c *DiscussionController) AddPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req PostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.ParentID != nil && *req.ParentID == 0 {
		req.ParentID = nil
	}

	post, err := c.DiscussionService.AddPost(ctx.Request.Context(), actor(ctx), id, req.Content, req.ParentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// EditPost godoc
// @Summary 编辑帖子
// @Description 仅作者本人
// @Tags 讨论区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "帖子ID"
// @Param   body body PostRequest true "新内容"
// @Success 200 {object} util.Response{data=service.PostView} "成功"
// @Router /api/posts/{id} [put]
func (c *DiscussionController) EditPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req PostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.DiscussionService.EditPost(ctx.Request.Context(), actor(ctx), id, req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 删除帖子
// @Description 作者或讨论发起人可删除，回复一并删除
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "帖子ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/posts/{id} [delete]
func (c *DiscussionController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.DiscussionService.DeletePost(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "post deleted", nil)
}

// CloseDiscussion godoc
// @Summary 关闭讨论
// @Description 仅发起人，关闭后不能再回复
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "讨论ID"
// @Success 200 {object} util.Response{data=service.DiscussionView} "成功"
// @Router /api/discussions/{id}/close [post]
func (c *DiscussionController) CloseDiscussion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	discussion, err := c.DiscussionService.Close(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, discussion)
}

// ToggleLike godoc
// @Summary 点赞或取消点赞
// @Tags 讨论区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "帖子ID"
// @Success 200 {object} util.Response{data=service.LikeResult} "成功"
// @Router /api/posts/{id}/like [post]
func (c *DiscussionController) ToggleLike(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.DiscussionService.ToggleLike(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
