package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session"
	flashCookie   = "flash"
)

const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashError   = "error"
)

type flash struct {
	Level   string
	Message string
}

func (h *handler) startSession(c *gin.Context, userID uuid.UUID, email string) error {
	tok, err := h.tokens.Issue(userID, email)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, tok, int(h.tokens.TTL().Seconds()), "/", "", h.cookieSecure, true)
	return nil
}

func (h *handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.cookieSecure, true)
}

// setFlash stores a one-shot message shown by the next rendered page. gin
// URL-escapes cookie values on the way out and unescapes them on the way in.
func setFlash(c *gin.Context, level, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, level+"|"+msg, 0, "/", "", false, true)
}

// popFlash reads and clears the pending message, if any.
func popFlash(c *gin.Context) *flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	level, msg, ok := strings.Cut(raw, "|")
	if !ok || msg == "" {
		return nil
	}
	switch level {
	case flashSuccess, flashInfo, flashError:
	default:
		level = flashInfo
	}
	return &flash{Level: level, Message: msg}
}
