package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/api/middleware"
	"github.com/LENAX/chain-engine/pkg/core/chain"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

// HeaderChainError 链计算错误类别响应头
const HeaderChainError = "X-Chain-Error"

// ChainHandler 链计算API处理器
type ChainHandler struct {
	engine *engine.Engine
}

// NewChainHandler 创建ChainHandler
func NewChainHandler(eng *engine.Engine) *ChainHandler {
	return &ChainHandler{engine: eng}
}

// Calculate 计算链的首尾节点
// POST /calculate
// POST /api/v1/chains/calculate
// 成功返回 ["first","last"]，失败返回 text/plain 错误信息
func (h *ChainHandler) Calculate(c *gin.Context) {
	req, status, err := decodeCalculateRequest(c.Request.Body)
	if err != nil {
		c.String(status, "%s", err.Error())
		return
	}

	res, err := h.engine.Calculate(c.Request.Context(), middleware.GetRequestID(c), req.Pairs())
	if err != nil {
		status, kind := chainErrorStatus(err)
		c.Header(HeaderChainError, kind)
		c.String(status, "%s", err.Error())
		return
	}

	c.JSON(http.StatusOK, []string{res.First, res.Last})
}

// Path 计算完整的链
// POST /api/v1/chains/path
func (h *ChainHandler) Path(c *gin.Context) {
	req, status, err := decodeCalculateRequest(c.Request.Body)
	if err != nil {
		c.JSON(status, dto.NewErrorResponse(status, err.Error()))
		return
	}

	out, err := h.engine.Run(c.Request.Context(), middleware.GetRequestID(c), req.Pairs())
	if err != nil {
		status, kind := chainErrorStatus(err)
		c.Header(HeaderChainError, kind)
		c.JSON(status, dto.NewErrorResponse(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PathResponse{
		Path:        out.Path,
		First:       out.Result.First,
		Last:        out.Result.Last,
		Fingerprint: out.Fingerprint,
		Cached:      out.Cached,
		RecordID:    out.RecordID,
	}))
}

// decodeCalculateRequest 解析请求体，返回失败时应使用的状态码
func decodeCalculateRequest(body io.Reader) (dto.CalculateRequest, int, error) {
	if body == nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid json: empty body")
	}

	var req dto.CalculateRequest
	dec := json.NewDecoder(body)
	err := dec.Decode(&req)
	if err == nil {
		// 顶层值之后只允许空白
		if _, tokErr := dec.Token(); !errors.Is(tokErr, io.EOF) {
			var maxErr *http.MaxBytesError
			if errors.As(tokErr, &maxErr) {
				err = tokErr
			} else {
				err = errors.New("unexpected data after top-level value")
			}
		}
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid json: empty body")
		}
		return nil, http.StatusBadRequest, fmt.Errorf("invalid json: %v", err)
	}
	return req, 0, nil
}

// chainErrorStatus 将链计算错误映射为HTTP状态码和错误类别
func chainErrorStatus(err error) (int, string) {
	ce, ok := chain.AsChainError(err)
	if !ok {
		log.Printf("❌ [Chain] 非预期错误: %v", err)
		return http.StatusInternalServerError, "internal"
	}
	switch ce.Kind {
	case chain.KindInvalid, chain.KindCycle:
		return http.StatusBadRequest, ce.Kind.String()
	default:
		return http.StatusInternalServerError, ce.Kind.String()
	}
}
