package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alkime/teeshot/internal/genai"
	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// upstreamError reports a failed backend call with a user-facing message.
func (s *Server) upstreamError(c *gin.Context, msg string, err error) {
	class := genai.Classify(err)
	s.logger.Error(msg, "error", err, "class", class, "upstream_status", genai.StatusCode(err))

	status := http.StatusBadGateway
	switch class {
	case genai.ClassOverloaded:
		status = http.StatusServiceUnavailable
	case genai.ClassQuota:
		status = http.StatusTooManyRequests
	case genai.ClassAuth, genai.ClassMissingKey:
		status = http.StatusUnauthorized
	case genai.ClassUnknown:
	}

	c.JSON(status, gin.H{
		"error": genai.UserMessage(err),
		"class": class,
	})
}

func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(c.Request.Context())
	}

	return context.WithTimeout(c.Request.Context(), d)
}
