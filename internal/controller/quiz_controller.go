package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

// QuizController 测验构建器接口，同时接受 JSON 与表单提交
type QuizController struct {
	QuizService    *service.QuizService
	MaxUploadBytes int64
}

func NewQuizController(quizService *service.QuizService, maxUploadBytes int64) *QuizController {
	return &QuizController{QuizService: quizService, MaxUploadBytes: maxUploadBytes}
}

// CreateQuizRequest 创建测验
// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Name      string `json:"name"`
	Points    *int   `json:"points"`
	Category  string `json:"category"`
	GradeType string `json:"grade_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type QuestionTypeRequest struct {
	QuestionType string `json:"question_type" form:"question_type"`
}

type QuestionTextRequest struct {
	QuestionText string `json:"question_text" form:"question_text"`
}

type DescriptionRequest struct {
	Description string `json:"description" form:"description"`
}

type OptionTextRequest struct {
	OptionText string `json:"option_text" form:"option_text"`
}

type SetCorrectRequest struct {
	OptionID uint `json:"option_id" form:"option_id"`
}

// SaveQuestionsRequest 整体保存题目
// swagger:model SaveQuestionsRequest
type SaveQuestionsRequest struct {
	Questions []service.BulkQuestion `json:"questions"`
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description grade_type 无法识别时按 numeric 处理，日期无法解析时为空
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body CreateQuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=service.QuizSummary} "创建成功"
// @Failure 400 {object} util.Response "名称为空"
// @Failure 403 {object} util.Response "非任课教师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), actor(ctx), courseID, service.CreateQuizInput{
		Name:            req.Name,
		Points:          req.Points,
		GradingCategory: req.Category,
		GradeType:       req.GradeType,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// GetQuiz godoc
// @Summary 测验详情
// @Description 任课教师可见正确答案，学生不可见
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quiz/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/quiz/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "quiz deleted", nil)
}

// AddQuestion godoc
// @Summary 添加题目
// @Description order 为当前最大值加一，按题型生成默认选项
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body QuestionTypeRequest false "题型"
// @Success 201 {object} util.Response{data=service.QuestionView} "成功"
// @Router /api/quiz/{id}/question/add [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req QuestionTypeRequest
	_ = ctx.ShouldBind(&req)

	question, err := c.QuizService.AddQuestion(ctx.Request.Context(), actor(ctx), id, req.QuestionType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 修改题目文本
// @Description 空文本会被替换为占位文本
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body QuestionTextRequest true "题目文本"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Router /api/question/{id}/update [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req QuestionTextRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestionText(ctx.Request.Context(), actor(ctx), id, req.QuestionText)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// UpdateDescription godoc
// @Summary 修改问答题描述
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body DescriptionRequest true "描述"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Failure 400 {object} util.Response "非问答题"
// @Router /api/question/{id}/update-long-text-description [post]
func (c *QuizController) UpdateDescription(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req DescriptionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateDescription(ctx.Request.Context(), actor(ctx), id, req.Description)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// ChangeType godoc
// @Summary 修改题型
// @Description 删除原有全部选项后按新题型重新生成
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body QuestionTypeRequest true "新题型"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Failure 400 {object} util.Response "题型无效"
// @Router /api/question/{id}/change-type [post]
func (c *QuizController) ChangeType(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req QuestionTypeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.ChangeType(ctx.Request.Context(), actor(ctx), id, req.QuestionType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 测验构建
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/question/{id}/delete [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuestion(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "question deleted", nil)
}

// SetCorrect godoc
// @Summary 设置正确选项
// @Description 同一题目只保留一个正确选项；表单提交时读取 correct_option_q{id}
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body SetCorrectRequest true "选项ID"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Failure 403 {object} util.Response "选项不属于该题目"
// @Router /api/question/{id}/set-correct [post]
func (c *QuizController) SetCorrect(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req SetCorrectRequest
	_ = ctx.ShouldBind(&req)
	if req.OptionID == 0 {
		req.OptionID = util.MustParseUint(ctx.PostForm(fmt.Sprintf("correct_option_q%d", id)))
	}
	if req.OptionID == 0 {
		util.BadRequest(ctx, "option_id is required")
		return
	}

	question, err := c.QuizService.SetCorrect(ctx.Request.Context(), actor(ctx), id, req.OptionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// AddOption godoc
// @Summary 添加选项
// @Description 仅单选题
// @Tags 测验构建
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 201 {object} util.Response{data=service.OptionView} "成功"
// @Failure 400 {object} util.Response "非单选题"
// @Router /api/question/{id}/option/add [post]
func (c *QuizController) AddOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	option, err := c.QuizService.AddOption(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, option)
}

// UpdateOption godoc
// @Summary 修改选项文本
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选项ID"
// @Param   body body OptionTextRequest true "选项文本"
// @Success 200 {object} util.Response{data=service.OptionView} "成功"
// @Router /api/option/{id}/update [put]
func (c *QuizController) UpdateOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req OptionTextRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	option, err := c.QuizService.UpdateOption(ctx.Request.Context(), actor(ctx), id, req.OptionText)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, option)
}

// DeleteOption godoc
// @Summary 删除选项
// @Description 题目的最后一个选项不能删除
// @Tags 测验构建
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选项ID"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Failure 400 {object} util.Response "最后一个选项"
// @Router /api/option/{id}/delete [delete]
func (c *QuizController) DeleteOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	question, err := c.QuizService.DeleteOption(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// SaveQuestions godoc
// @Summary 整体保存题目
// @Description 在一个事务中替换测验的全部题目
// @Tags 测验构建
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "测验ID"
// @Param   body body SaveQuestionsRequest true "题目列表"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Router /api/quiz/{id}/save-questions [post]
func (c *QuizController) SaveQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req SaveQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.SaveQuestions(ctx.Request.Context(), actor(ctx), id, req.Questions)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "questions saved", quiz)
}

// UploadImage godoc
// @Summary 上传题目图片
// @Description 保存在课程目录下，重名时追加数字后缀
// @Tags 测验构建
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   file formData file true "图片"
// @Success 200 {object} util.Response{data=service.ImageResult} "成功"
// @Failure 400 {object} util.Response "未选择文件"
// @Router /api/question/{id}/image [post]
func (c *QuizController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	header, ok := formFile(ctx, "file", c.MaxUploadBytes)
	if !ok {
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.QuizService.UploadImage(ctx.Request.Context(), actor(ctx), id, service.ImageUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
