package routes

import (
	"github.com/gin-gonic/gin"

	"email-intake/internal/utils"
)

// Merge into existing gin.H
func H(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["AppVersion"] = utils.GetVersion()
	return data
}

// Returns a HTML response with merged data
func HTML(c *gin.Context, code int, name string, data gin.H) {
	data = H(c, data)
	c.HTML(code, name, data)
}

// wantsJSON reports whether the client prefers JSON over a page. A missing
// or wildcard Accept header gets HTML.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
