package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cr4652060-hue/kb-system/internal/conf"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/api"
	"github.com/cr4652060-hue/kb-system/internal/frontdesk/web"
	"github.com/cr4652060-hue/kb-system/internal/middleware"
)

func main() {
	cfg := conf.LoadConfig()

	client := api.New(cfg.Front.APIBase)
	h := web.NewHandler(client, cfg.Front.APIBase, cfg.Session.CookieName)

	r := gin.Default()
	r.Use(middleware.TraceMiddleware())
	h.Register(r)

	logrus.Infof("🚀 知识库前台已启动，监听端口 :%s（后端 %s）", cfg.Front.Port, cfg.Front.APIBase)
	if err := r.Run(":" + cfg.Front.Port); err != nil {
		logrus.Fatalf("❌ 前台启动失败: %v", err)
	}
}
