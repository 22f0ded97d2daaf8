package app

import (
	"aldudu_backend/docs"
	"aldudu_backend/internal/config"
	"aldudu_backend/internal/middleware"
	"aldudu_backend/internal/model"
	"aldudu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/healthz", c.health.Healthz)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Services.Auth, cfg.JWT.CookieName))
	{
		authGroup.POST("/logout", c.auth.Logout)

		a.registerCourseRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
		a.registerMaterialRoutes(authGroup, c)
		a.registerDiscussionRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.GET("/session", middleware.TryAuthMiddleware(a.Services.Auth, cfg.JWT.CookieName), c.auth.Session)
	}
}

func (a *App) registerCourseRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/initial-data", c.course.InitialData)
	group.GET("/courses/year/:year_id", c.course.CoursesByYear)
	group.POST("/courses", middleware.RoleMiddleware(model.Teacher), c.course.CreateCourse)
	group.GET("/courses/:id", c.course.GetCourse)
	group.PUT("/courses/:id", c.course.UpdateCourse)
	group.DELETE("/courses/:id", c.course.DeleteCourse)
	group.POST("/enroll", middleware.RoleMiddleware(model.Student), c.course.Enroll)
}

func (a *App) registerQuizRoutes(group *gin.RouterGroup, c *controllers) {
	// 测验构建器，归属校验在 service 层完成
	group.POST("/courses/:id/quizzes", c.quiz.CreateQuiz)
	group.GET("/quiz/:id", c.quiz.GetQuiz)
	group.DELETE("/quiz/:id", c.quiz.DeleteQuiz)
	group.POST("/quiz/:id/question/add", c.quiz.AddQuestion)
	group.POST("/quiz/:id/save-questions", c.quiz.SaveQuestions)

	group.PUT("/question/:id/update", c.quiz.UpdateQuestion)
	group.POST("/question/:id/update-long-text-description", c.quiz.UpdateDescription)
	group.POST("/question/:id/change-type", c.quiz.ChangeType)
	group.DELETE("/question/:id/delete", c.quiz.DeleteQuestion)
	group.POST("/question/:id/set-correct", c.quiz.SetCorrect)
	group.POST("/question/:id/option/add", c.quiz.AddOption)
	group.POST("/question/:id/image", c.quiz.UploadImage)

	group.PUT("/option/:id/update", c.quiz.UpdateOption)
	group.DELETE("/option/:id/delete", c.quiz.DeleteOption)

	// 提交与成绩
	group.POST("/quiz/:id/submit", c.submission.Submit)
	group.GET("/quiz/:id/submission", c.submission.GetSubmissions)
}

func (a *App) registerMaterialRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/courses/:id/links", c.material.AddLink)
	group.DELETE("/links/:id", c.material.DeleteLink)
	group.POST("/courses/:id/files", c.material.AddFile)
	group.GET("/files/:id", c.material.DownloadFile)
	group.DELETE("/files/:id", c.material.DeleteFile)
}

func (a *App) registerDiscussionRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/courses/:id/discussions", c.discussion.CreateDiscussion)
	group.GET("/courses/:id/discussions", c.discussion.ListDiscussions)
	group.GET("/discussions/:id", c.discussion.GetDiscussion)
	group.GET("/discussions/:id/posts", c.discussion.ListPosts)
	group.POST("/discussions/:id/posts", c.discussion.AddPost)
	group.POST("/discussions/:id/close", c.discussion.CloseDiscussion)
	group.PUT("/posts/:id", c.discussion.EditPost)
	group.DELETE("/posts/:id", c.discussion.DeletePost)
	group.POST("/posts/:id/like", c.discussion.ToggleLike)
}
