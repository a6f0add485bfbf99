// Package handlers maps the medias, posts and publications REST surface onto
// the service layer.
//
// Every failure is written as an ErrorResponse whose code is one of the
// constants in errors.go:
//
//	HTTP/1.1 403 Forbidden
//	{
//	  "request_id": "2f0c7d0e-5d8e-4f57-a3d1-7a4b8d2f6b10",
//	  "code": "forbidden",
//	  "message": "cannot update a publication into the past"
//	}
//
// Successful writes return the affected record; DELETE returns the record as
// it was before removal.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-publications-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope shared by all endpoints.
type ErrorResponse struct {
	// Echo of the X-Request-ID response header.
	RequestID string `json:"request_id,omitempty" example:"2f0c7d0e-5d8e-4f57-a3d1-7a4b8d2f6b10"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"publication not found"`
}

// fail aborts with an ErrorResponse. Server-side failures are logged with the
// matched route so they can be grouped without the raw id in the path.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("route", c.FullPath()).
			Str("code", code).
			Str("message", msg).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router write NoRoute/NoMethod errors in the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func notModified(c *gin.Context) { c.Status(http.StatusNotModified) }
