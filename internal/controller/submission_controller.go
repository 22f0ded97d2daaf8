package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitQuizRequest 学生提交答案
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers []service.SubmittedAnswer `json:"answers"`
}

// Submit godoc
// @Summary 提交测验
// @Description 每个学生只能提交一次，得分为答对题数占计分题数的百分比
// @Tags 测验提交
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body SubmitQuizRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmissionResult} "成功"
// @Failure 400 {object} util.Response "已提交或没有答案"
// @Failure 403 {object} util.Response "教师或未选课"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quiz/{id}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.Submit(ctx.Request.Context(), actor(ctx), id, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "quiz submitted", result)
}

// GetSubmissions godoc
// @Summary 查看提交
// @Description 任课教师查看全部提交，学生查看自己的提交
// @Tags 测验提交
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.SubmissionsView} "成功"
// @Failure 404 {object} util.Response "没有提交"
// @Router /api/quiz/{id}/submission [get]
func (c *SubmissionController) GetSubmissions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	view, err := c.SubmissionService.Submissions(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
