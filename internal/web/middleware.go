package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxUserID = "userID"

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			log.Error("http request", attrs...)
		case status >= 400:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error("panic recovered", slog.Any("panic", rec), slog.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// authenticate resolves the session cookie into a user ID. A bad or expired
// token is dropped; the request continues anonymously.
func (h *handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(sessionCookie)
		if err != nil || tok == "" {
			c.Next()
			return
		}

		id, err := h.tokens.Parse(tok)
		if err != nil {
			h.clearSession(c)
			c.Next()
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

func requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) != uuid.Nil {
			c.Next()
			return
		}
		redirectToLogin(c, c.Request.URL.RequestURI(), "Please log in to see this page.")
		c.Abort()
	}
}

// currentUser is uuid.Nil for anonymous requests.
func currentUser(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func redirectToLogin(c *gin.Context, next, msg string) {
	setFlash(c, flashError, msg)
	c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(next))
}

// safeNext only allows local absolute paths so ?next= can't send the user
// to another host.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
