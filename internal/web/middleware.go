package web

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var untrackedPrefixes = []string{
	"/static/",
	"/admin",
	"/favicon",
	"/privacy",
	"/views/",
	"/healthz",
}

// visitorTrackingMiddleware records page loads with hashed addresses.
// Requests carrying DNT: 1 are never recorded.
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.store == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		s.background(func(ctx context.Context) {
			if err := s.store.RecordVisit(ctx, ip, ua, path); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}
