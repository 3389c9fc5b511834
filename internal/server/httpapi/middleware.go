package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/gin-gonic/gin"
)

const sessionKey = "sessionID"

// sessionID returns the session token carried by the request, or "".
func sessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionKey); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	sid, err := c.Cookie(common.SessionCookieName)
	if err != nil {
		return ""
	}
	return sid
}

// requireSession rejects requests without a non-empty session cookie. The
// token itself is not checked against stored users.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(common.SessionCookieName)
		if err != nil || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *Server) recover(c *gin.Context, err any) {
	s.logger.Error(c.Request.Context(), "panic recovered", "error", err, "route", c.FullPath())
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
