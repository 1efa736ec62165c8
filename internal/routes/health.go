package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"email-intake/internal/utils"
)

func Health(r *gin.RouterGroup) {
	r.GET("/health", func(c *gin.Context) {
		msg := c.Query("ping")
		if msg == "" {
			msg = "pong"
		}

		c.JSON(http.StatusOK, gin.H{
			"message": msg,
			"version": utils.GetVersion(),
		})
	})
}
