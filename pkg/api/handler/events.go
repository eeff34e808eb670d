package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// EventsHandler 计算事件推送处理器
type EventsHandler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// NewEventsHandler 创建EventsHandler
func NewEventsHandler(eng *engine.Engine) *EventsHandler {
	return &EventsHandler{
		engine: eng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Stream 通过websocket推送计算事件
// GET /api/v1/events/ws
func (h *EventsHandler) Stream(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, "需要websocket升级请求"))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := h.engine.Subscribe(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, err.Error()))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ [Events] websocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	// 读循环只处理控制帧，连接关闭时结束订阅
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("⚠️ [Events] 连接异常关闭: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-feed:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
