package api

import (
	"net/http"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	Version        = "1.0.0"
	welcomeMessage = "欢迎使用岑津科技管理系统 API"
)

// Welcome GET /. Adds the caller identity when a valid token is sent.
func Welcome(c *gin.Context) {
	body := gin.H{"message": welcomeMessage, "version": Version}
	if claims, ok := middlewares.CurrentUser(c); ok {
		body["user"] = claims
	}
	c.JSON(http.StatusOK, body)
}

// Health GET RouteGroup + HealthRoute.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
