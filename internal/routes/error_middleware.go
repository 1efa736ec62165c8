package routes

import (
	"log/slog"
	"slices"

	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request, as JSON or rendered
// into error.html.tmpl.
type errorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Codes   []string `json:"codes,omitempty"`
}

// ErrorHandler turns the last error recorded on the context into a
// response. Handlers only call AbortWithError or AbortWithHTTPError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status := GetErrorStatus(last.Err)
		level := slog.LevelWarn
		if status >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "Request failed",
			"error", last.Err,
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if c.Writer.Written() {
			return
		}

		resp := errorResponse{
			Status:  status,
			Message: GetErrorInfo(last.Err).Message,
			Codes:   errorCodes(c.Errors),
		}

		if wantsJSON(c) {
			c.AbortWithStatusJSON(status, resp)
			return
		}
		HTML(c, status, "error.html.tmpl", gin.H{
			"Status":  resp.Status,
			"Message": resp.Message,
			"Codes":   resp.Codes,
		})
		c.Abort()
	}
}

// errorCodes lists the distinct stop codes of errs in the order recorded.
func errorCodes(errs []*gin.Error) []string {
	var codes []string
	for _, e := range errs {
		for _, code := range GetErrorInfo(e.Err).StopCodes {
			if !slices.Contains(codes, code) {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// AbortWithError records err for ErrorHandler and stops the chain with the
// status err maps to.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
	c.Status(GetErrorStatus(err))
}

// AbortWithHTTPError is AbortWithError for an err without a mapped status.
func AbortWithHTTPError(c *gin.Context, statusCode int, err error, message string, stopCodes ...string) {
	AbortWithError(c, NewHTTPError(statusCode, err, message, stopCodes...))
}
