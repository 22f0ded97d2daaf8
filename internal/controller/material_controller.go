package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaterialController 课程链接与文件
type MaterialController struct {
	MaterialService *service.MaterialService
	MaxUploadBytes  int64
}

func NewMaterialController(materialService *service.MaterialService, maxUploadBytes int64) *MaterialController {
	return &MaterialController{MaterialService: materialService, MaxUploadBytes: maxUploadBytes}
}

// AddLinkRequest 添加链接
// swagger:model AddLinkRequest
type AddLinkRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
	URL  string `json:"url" form:"url" binding:"required"`
}

// AddLink godoc
// @Summary 添加课程链接
// @Description 仅支持 http 与 https 地址
// @Tags 课程资料
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body AddLinkRequest true "链接"
// @Success 201 {object} util.Response{data=model.Link} "成功"
// @Failure 400 {object} util.Response "地址无效"
// @Failure 403 {object} util.Response "非任课教师"
// @Router /api/courses/{id}/links [post]
func (c *MaterialController) AddLink(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req AddLinkRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.MaterialService.AddLink(ctx.Request.Context(), actor(ctx), courseID, req.Name, req.URL)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

// DeleteLink godoc
// @Summary 删除课程链接
// @Tags 课程资料
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "链接ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/links/{id} [delete]
func (c *MaterialController) DeleteLink(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.MaterialService.DeleteLink(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "link deleted", nil)
}

// AddFile godoc
// @Summary 上传课程文件
// @Description 可设置开放时间窗口，学生只能在窗口内下载
// @Tags 课程资料
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   file formData file true "文件"
// @Param   name formData string false "显示名称"
// @Param   description formData string false "描述"
// @Param   start_date formData string false "开放时间"
// @Param   end_date formData string false "截止时间"
// @Success 201 {object} util.Response{data=service.FileView} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/courses/{id}/files [post]
func (c *MaterialController) AddFile(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
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

	view, err := c.MaterialService.AddFile(ctx.Request.Context(), actor(ctx), courseID, service.FileUpload{
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
		StartDate:   ctx.PostForm("start_date"),
		EndDate:     ctx.PostForm("end_date"),
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// DownloadFile godoc
// @Summary 下载课程文件
// @Tags 课程资料
// @Produce  octet-stream
// @Security ApiKeyAuth
// @Param   id path int true "文件ID"
// @Success 200 {file} binary "文件内容"
// @Failure 403 {object} util.Response "不在开放时间内"
// @Failure 404 {object} util.Response "文件不存在"
// @Router /api/files/{id} [get]
func (c *MaterialController) DownloadFile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, reader, err := c.MaterialService.OpenFile(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=file_%d", file.ID)
	}
	ctx.DataFromReader(http.StatusOK, file.Size, contentType, reader, map[string]string{
		"Content-Disposition": disposition,
	})
}

// DeleteFile godoc
// @Summary 删除课程文件
// @Tags 课程资料
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "文件ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/files/{id} [delete]
func (c *MaterialController) DeleteFile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.MaterialService.DeleteFile(ctx.Request.Context(), actor(ctx), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "file deleted", nil)
}
