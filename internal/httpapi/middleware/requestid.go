package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/teamdir/teamdir/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id and attaches a request-scoped
// logger entry to the context. Inbound ids are kept so callers can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		entry := logger.Logger(c.Request.Context()).WithFields(logrus.Fields{
			"requestID": requestID,
			"path":      c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), entry))

		c.Next()
	}
}
