package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

// CacheHandler 结果缓存API处理器
type CacheHandler struct {
	engine *engine.Engine
}

// NewCacheHandler 创建CacheHandler
func NewCacheHandler(eng *engine.Engine) *CacheHandler {
	return &CacheHandler{engine: eng}
}

// Clear 清空结果缓存
// DELETE /api/v1/cache
func (h *CacheHandler) Clear(c *gin.Context) {
	if !h.engine.CacheEnabled() {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(503, "结果缓存未启用"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CacheClearResponse{Cleared: h.engine.ClearCache()}))
}

// Evict 删除指定指纹的缓存结果
// DELETE /api/v1/cache/:fingerprint
func (h *CacheHandler) Evict(c *gin.Context) {
	if !h.engine.CacheEnabled() {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(503, "结果缓存未启用"))
		return
	}
	fp := c.Param("fingerprint")
	if !h.engine.EvictCache(fp) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, fmt.Sprintf("缓存不存在: %s", fp)))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CacheClearResponse{Cleared: 1}))
}
