package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourseRequest academic_year_id 兼容数字和字符串
// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Name           string      `json:"name" binding:"required"`
	AcademicYearID interface{} `json:"academic_year_id"`
}

// UpdateCourseRequest 字段均可选
// swagger:model UpdateCourseRequest
type UpdateCourseRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,coursecolor"`
}

// EnrollRequest 班级码选课
// swagger:model EnrollRequest
type EnrollRequest struct {
	ClassCode string `json:"class_code" binding:"required,classcode"`
}

// InitialData godoc
// @Summary 首页初始数据
// @Description 学年列表（倒序）及当前用户在最新学年的课程
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.InitialData} "成功"
// @Router /api/initial-data [get]
func (c *CourseController) InitialData(ctx *gin.Context) {
	data, err := c.CourseService.InitialData(ctx.Request.Context(), actor(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// CoursesByYear godoc
// @Summary 按学年获取课程
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   year_id path int true "学年ID"
// @Success 200 {object} util.Response{data=[]service.CourseCard} "成功"
// @Router /api/courses/year/{year_id} [get]
func (c *CourseController) CoursesByYear(ctx *gin.Context) {
	yearID, ok := pathID(ctx, "year_id")
	if !ok {
		return
	}
	courses, err := c.CourseService.CoursesForYear(ctx.Request.Context(), actor(ctx), yearID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 仅教师可用，班级码由服务端生成
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=service.CourseCard} "创建成功"
// @Failure 400 {object} util.Response "名称或学年无效"
// @Failure 403 {object} util.Response "非教师"
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.CourseService.Create(ctx.Request.Context(), actor(ctx), service.CreateCourseInput{
		Name:           req.Name,
		AcademicYearID: req.AcademicYearID,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, card)
}

// UpdateCourse godoc
// @Summary 修改课程名称或颜色
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body UpdateCourseRequest true "修改内容"
// @Success 200 {object} util.Response{data=service.CourseCard} "成功"
// @Failure 403 {object} util.Response "非任课教师"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.CourseService.Update(ctx.Request.Context(), actor(ctx), id, service.UpdateCourseInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, card)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 课程信息及测验、链接、文件
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 403 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.CourseService.Detail(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 同时删除课程下的全部测验、资料与讨论
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非任课教师"
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.CourseService.Delete(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "course deleted", nil)
}

// Enroll godoc
// @Summary 通过班级码选课
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "班级码"
// @Success 200 {object} util.Response{data=service.CourseCard} "成功"
// @Failure 400 {object} util.Response "班级码格式错误"
// @Failure 403 {object} util.Response "非学生"
// @Failure 404 {object} util.Response "班级码不存在"
// @Failure 409 {object} util.Response "已选该课程"
// @Router /api/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.ErrInvalidClassCode)
		return
	}

	card, err := c.CourseService.Enroll(ctx.Request.Context(), actor(ctx), req.ClassCode)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "enrolled", card)
}
