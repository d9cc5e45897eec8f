package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "无效的数据格式"
	case http.StatusUnauthorized:
		return "未提供认证信息"
	case http.StatusNotFound:
		return "资源不存在"
	case http.StatusRequestEntityTooLarge:
		return "文件过大"
	case http.StatusTooManyRequests:
		return "请求过于频繁"
	default:
		return "服务器错误"
	}
}

// abortJSON writes the failure envelope and stops the chain.
func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}

// Errors renders errors attached to the context when the handler has not written a body itself. The last
// public error provides the message, otherwise the generic text of the status is used.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}

		msg := statusErrorText(status)
		if public := c.Errors.ByType(gin.ErrorTypePublic); len(public) > 0 {
			msg = public.Last().Error()
		}
		abortJSON(c, status, msg)
	}
}
