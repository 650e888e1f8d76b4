package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cr4652060-hue/kb-system/internal/conf"
	"github.com/cr4652060-hue/kb-system/internal/data"
	"github.com/cr4652060-hue/kb-system/internal/handler"
	"github.com/cr4652060-hue/kb-system/internal/middleware"
	"github.com/cr4652060-hue/kb-system/internal/repository"
	"github.com/cr4652060-hue/kb-system/internal/service"
)

// Run 启动知识库 API 服务
func Run() {
	// 1. 加载配置
	cfg := conf.LoadConfig()

	// 2. 初始化数据层 (Postgres, Redis, MinIO)
	d, cleanup, err := data.NewData(cfg)
	if err != nil {
		logrus.Fatalf("❌ 数据层初始化失败: %v", err)
	}
	defer cleanup()

	userRepo := repository.NewUserRepository(d.DB)
	kbRepo := repository.NewKnowledgeRepository(d.DB)

	// 3. 初始化服务层
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessions := service.NewRedisSessionStore(d.Redis, sessionTTL)
	authSvc := service.NewAuthService(userRepo, sessions)
	searchSvc := service.NewSearchService(kbRepo)
	importSvc := service.NewImportService(kbRepo, service.NewMinioArchiver(d.Minio, d.Bucket))
	adminSvc := service.NewAdminService(userRepo)
	tplSvc := service.NewTemplateService(d.Minio, d.Bucket)

	// 初始管理员兜底
	if err := authSvc.SeedAdmin(); err != nil {
		logrus.Fatalf("❌ 初始管理员创建失败: %v", err)
	}

	// 4. 初始化 Handler
	authH := handler.NewAuthHandler(authSvc, cfg.Session.CookieName, int(sessionTTL.Seconds()))
	kbH := handler.NewKnowledgeHandler(searchSvc, importSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	tplH := handler.NewTemplateHandler(tplSvc)

	// 5. 初始化 Gin Server
	r := gin.Default()
	r.Use(middleware.TraceMiddleware())

	// CORS 配置（前台跑在另一个端口）
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-Trace-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. 注册路由
	sessionAuth := middleware.SessionAuth(cfg.Session.CookieName, authSvc)

	// 公开接口
	r.GET("/login.html", authH.LoginPage)
	r.POST("/login", authH.Login)
	r.POST("/logout", authH.Logout)
	r.GET("/api/search", kbH.Search) // 检索对未登录开放

	// 鉴权接口
	protected := r.Group("/api")
	protected.Use(sessionAuth)
	{
		protected.GET("/me", authH.Me)
		protected.GET("/knowledge", kbH.List)

		// 模板下载：能登录且不是普通员工
		protected.GET("/template/download", middleware.RequireNonEmployee(), tplH.Download)

		// 知识维护：仅 ADMIN / DEPT
		manage := protected.Group("/")
		manage.Use(middleware.RequireManager())
		{
			manage.POST("/knowledge", kbH.Add)
			manage.POST("/knowledge/import", kbH.Import)
		}

		// 账号管理：仅 ADMIN
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", adminH.ListUsers)
			admin.POST("/users", adminH.CreateUser)
			admin.POST("/bootstrap-dept-accounts", adminH.Bootstrap)
			admin.POST("/users/reset-password", adminH.ResetPassword)
		}
	}

	logrus.Infof("🚀 知识库 API 已启动，监听端口 :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logrus.Fatalf("❌ Server 启动失败: %v", err)
	}
}
