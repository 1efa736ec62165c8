package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"email-intake/internal/submission"
)

// Context key holding the *submission.Service.
const ServiceKey = "Submissions"

func getService(c *gin.Context) (*submission.Service, error) {
	svcIface, exists := c.Get(ServiceKey)
	if !exists {
		slog.Warn("Submission service not found in context")
		return nil, ErrServiceUnavailable
	}
	svc, ok := svcIface.(*submission.Service)
	if !ok || svc == nil {
		return nil, ErrInvalidService
	}
	return svc, nil
}

func SubmissionRoutes(r *gin.RouterGroup) {

	r.GET("/", func(c *gin.Context) {
		HTML(c, http.StatusOK, "index.html.tmpl", nil)
	})

	// Every submission is stored, whatever the address looks like.
	r.POST("/submit", func(c *gin.Context) {
		svc, err := getService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			AbortWithHTTPError(c, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, err),
				"Invalid form submission", "INVALID_FORM")
			return
		}

		record, err := svc.Submit(c.Request.Context(), c.PostForm("name"), c.PostForm("email"))
		if err != nil {
			AbortWithError(c, fmt.Errorf("%w: %w", ErrDatabaseError, err))
			return
		}

		if wantsJSON(c) {
			c.JSON(http.StatusOK, record)
			return
		}
		c.Redirect(http.StatusFound, "/")
	})

	r.GET("/data", func(c *gin.Context) {
		svc, err := getService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		snap, err := svc.Snapshot(c.Request.Context())
		if err != nil {
			AbortWithError(c, fmt.Errorf("%w: %w", ErrDatabaseError, err))
			return
		}
		c.JSON(http.StatusOK, snap)
	})
}
