package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bar-website/models"
)

const (
	sessionCookie = "bw_session"
	sessionKey    = "session"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requestLogger writes one structured line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// sessionToken reads the token from the session cookie or a Bearer header.
func sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(sessionCookie); err == nil {
		return v
	}
	return ""
}

// currentSession verifies the request's token, if any.
func (s *Server) currentSession(c *gin.Context) (models.Session, bool) {
	tok := sessionToken(c)
	if tok == "" {
		return models.Session{}, false
	}
	sess, err := s.auth.Verify(tok)
	if err != nil {
		return models.Session{}, false
	}
	return sess, true
}

// requireAdmin guards dashboard routes. Pages redirect to the login form,
// API calls get 401.
func (s *Server) requireAdmin(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.currentSession(c)
		if !ok {
			if api {
				fail(c, http.StatusUnauthorized, "missing or invalid session")
				return
			}
			c.Redirect(http.StatusSeeOther, "/admin")
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(models.Session); ok {
			return sess
		}
	}
	return models.Session{}
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", s.cookieSecure, true)
}
