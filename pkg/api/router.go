package api

import (
	"github.com/gin-gonic/gin"

	"github.com/LENAX/chain-engine/pkg/api/handler"
	"github.com/LENAX/chain-engine/pkg/api/middleware"
	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

// SetupRouter 设置路由
func SetupRouter(eng *engine.Engine, version string) *gin.Engine {
	// 设置gin模式
	if eng.Config().ChainEngine.General.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	maxBody := eng.Config().ChainEngine.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}

	router := gin.New()

	// 全局中间件
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// 创建handlers
	chainHandler := handler.NewChainHandler(eng)
	historyHandler := handler.NewHistoryHandler(eng)
	cacheHandler := handler.NewCacheHandler(eng)
	eventsHandler := handler.NewEventsHandler(eng)
	healthHandler := handler.NewHealthHandler(eng, version)

	// 健康检查路由（不带前缀）
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	limit := middleware.BodyLimit(maxBody)

	// 原始计算接口
	router.POST("/calculate", limit, chainHandler.Calculate)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		chains := v1.Group("/chains", limit)
		{
			chains.POST("/calculate", chainHandler.Calculate)
			chains.POST("/path", chainHandler.Path)
		}

		history := v1.Group("/history")
		{
			history.GET("", historyHandler.List)
			history.GET("/:id", historyHandler.Get)
			history.DELETE("", historyHandler.Purge)
		}

		cache := v1.Group("/cache")
		{
			cache.DELETE("", cacheHandler.Clear)
			cache.DELETE("/:fingerprint", cacheHandler.Evict)
		}

		v1.GET("/events/ws", eventsHandler.Stream)
	}

	return router
}
