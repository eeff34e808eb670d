package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/core/engine"
	"github.com/LENAX/chain-engine/pkg/storage"
)

// HistoryHandler 计算历史API处理器
type HistoryHandler struct {
	engine *engine.Engine
}

// NewHistoryHandler 创建HistoryHandler
func NewHistoryHandler(eng *engine.Engine) *HistoryHandler {
	return &HistoryHandler{engine: eng}
}

// List 分页列出计算记录
// GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	var query dto.HistoryQueryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, fmt.Sprintf("查询参数错误: %v", err)))
		return
	}

	limit := query.GetDefaultLimit()
	records, total, err := h.engine.ListHistory(c.Request.Context(), storage.ListOptions{
		Status: query.Status,
		Limit:  limit,
		Offset: query.Offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]dto.CalculationRecord, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.NewCalculationRecord(rec))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse[dto.CalculationRecord]{
		Total:   total,
		Items:   items,
		HasMore: query.Offset+len(items) < total,
	}))
}

// Get 获取单条计算记录
// GET /api/v1/history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.engine.GetHistory(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCalculationRecord(rec)))
}

// Purge 立即删除超过保留期的计算记录
// DELETE /api/v1/history
func (h *HistoryHandler) Purge(c *gin.Context) {
	deleted, err := h.engine.PurgeHistory(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PurgeResponse{Deleted: deleted}))
}

func (h *HistoryHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(503, "计算历史未启用"))
	case errors.Is(err, storage.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, fmt.Sprintf("记录不存在: %s", c.Param("id"))))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询计算历史失败: %v", err)))
	}
}
