package controller

import (
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// actor 从认证中间件写入的 Claims 中取得当前用户
func actor(ctx *gin.Context) service.Actor {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}
}

// pathID 解析路径中的数字 ID，失败时直接写入 400 响应
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// formFile 读取上传文件并校验大小，失败时直接写入 400 响应
func formFile(ctx *gin.Context, field string, maxBytes int64) (*multipart.FileHeader, bool) {
	header, err := ctx.FormFile(field)
	if err != nil {
		util.BadRequest(ctx, "no file selected")
		return nil, false
	}
	if header.Filename == "" {
		util.BadRequest(ctx, "no file selected")
		return nil, false
	}
	if maxBytes > 0 && header.Size > maxBytes {
		util.BadRequest(ctx, fmt.Sprintf("file exceeds %d MB", maxBytes>>20))
		return nil, false
	}
	return header, true
}
