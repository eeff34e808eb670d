package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	engine    *engine.Engine
	version   string
	startTime time.Time
}

// NewHealthHandler 创建HealthHandler
func NewHealthHandler(eng *engine.Engine, version string) *HealthHandler {
	return &HealthHandler{
		engine:    eng,
		version:   version,
		startTime: time.Now(),
	}
}

// Health 健康检查
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    formatDuration(uptime),
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

// Ready 就绪检查（引擎启动后才就绪）
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.engine.IsRunning() {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(503, "engine not running"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(map[string]interface{}{
		"status":  "ready",
		"history": h.engine.HistoryEnabled(),
	}))
}

// formatDuration 格式化时长
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
