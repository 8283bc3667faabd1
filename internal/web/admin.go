package web

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/analytics"
)

const adminCookie = "admin_token"

// hashIP keeps raw client addresses out of the logs.
func (s *Server) hashIP(ip string) string {
	if s.store == nil {
		return "anonymous"
	}
	return s.store.HashIP(ip)
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) checkCredentials(username, password string) bool {
	want := s.cfg.Admin
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(want.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(want.Password)) == 1
	return userOK && passOK
}

func (s *Server) setupAdminRoutes() {
	r := s.engine

	if gin.Mode() == gin.DebugMode {
		if s.cfg.Admin.Password == "admin123" {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
		log.Printf("Admin token (dev only): %s", s.adminToken)
	}

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats(c)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":     stats,
			"openViews": s.views.Len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/api/visitors", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
		if err != nil || limit <= 0 {
			limit = 200
		}
		visitors, err := s.store.RecentVisitors(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, visitors)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		removed, err := s.store.Cleanup(c.Request.Context(), analytics.Retention)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})
}

func (s *Server) adminStats(c *gin.Context) (*analytics.Stats, error) {
	if s.store == nil {
		return &analytics.Stats{}, nil
	}
	return s.store.Stats(c.Request.Context())
}
