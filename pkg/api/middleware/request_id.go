package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID 请求ID头
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID 为每个请求分配ID（沿用客户端传入的 X-Request-ID）
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
