package controller

import (
	"aldudu_backend/internal/config"
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Cfg: cfg}
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (c *AuthController) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Cfg.JWT.CookieName, value, maxAge, "/", "", c.Cfg.Server.Mode == gin.ReleaseMode, true)
}

// Login godoc
// @Summary 用户登录
// @Description 使用邮箱和密码登录，返回 JWT 并写入 HttpOnly Cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	c.setCookie(ctx, token, int(c.Cfg.JWT.ExpireTime.Seconds()))
	util.Success(ctx, gin.H{
		"token": token,
		"user":  SessionUser{ID: user.ID, Name: user.Name, Role: string(user.Role)},
	})
}

// Logout godoc
// @Summary 退出登录
// @Description 注销当前令牌并清除 Cookie
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(ctx.Request.Context(), util.GetUserFromContext(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.setCookie(ctx, "", -1)
	util.SuccessWithMessage(ctx, "logged out", nil)
}

// Session godoc
// @Summary 当前会话
// @Description 未登录时 isAuthenticated 为 false
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Success(ctx, gin.H{"isAuthenticated": false})
		return
	}

	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.Success(ctx, gin.H{"isAuthenticated": false})
		return
	}
	util.Success(ctx, gin.H{
		"isAuthenticated": true,
		"user":            SessionUser{ID: user.ID, Name: user.Name, Role: string(user.Role)},
	})
}
