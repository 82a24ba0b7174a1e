package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	"github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/pkg/validation"
)

const msgBadLogin = "Please enter a correct email and password."

// sessionGone handles a valid token whose user no longer exists.
func (h *handler) sessionGone(c *gin.Context) {
	h.clearSession(c)
	redirectToLogin(c, "/", "Your session has expired. Please log in again.")
}

func (h *handler) accountPage(c *gin.Context) {
	u, err := h.Accounts.GetUser(c.Request.Context(), currentUser(c))
	if errors.Is(err, accountapp.ErrNotFound) {
		h.sessionGone(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "view_account.html", gin.H{"Title": "Account", "User": u})
}

func (h *handler) updateAccountPage(c *gin.Context) {
	u, err := h.Accounts.GetUser(c.Request.Context(), currentUser(c))
	if errors.Is(err, accountapp.ErrNotFound) {
		h.sessionGone(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "update_account.html", gin.H{
		"Title":  "Update account",
		"Form":   u.Profile,
		"Errors": (*validation.Error)(nil),
	})
}

func (h *handler) updateAccount(c *gin.Context) {
	var form domain.Profile
	_ = c.ShouldBind(&form)

	_, err := h.Accounts.UpdateProfile(c.Request.Context(), currentUser(c), form)
	if err == nil {
		setFlash(c, flashSuccess, "Your account information has been updated.")
		c.Redirect(http.StatusSeeOther, "/view_account")
		return
	}

	ve, ok := validation.As(err)
	if errors.Is(err, accountapp.ErrEmailTaken) {
		ve, ok = validation.Field("email", accountapp.MsgEmailTaken), true
	}
	switch {
	case ok:
		h.render(c, http.StatusUnprocessableEntity, "update_account.html", gin.H{
			"Title":  "Update account",
			"Form":   form,
			"Errors": ve,
		})
	case errors.Is(err, accountapp.ErrNotFound):
		h.sessionGone(c)
	default:
		h.fail(c, err)
	}
}

func (h *handler) changePasswordPage(c *gin.Context) {
	h.render(c, http.StatusOK, "change_password.html", gin.H{
		"Title":  "Change password",
		"Errors": (*validation.Error)(nil),
	})
}

func (h *handler) changePassword(c *gin.Context) {
	var form domain.ChangePasswordRequest
	_ = c.ShouldBind(&form)

	err := h.Accounts.ChangePassword(c.Request.Context(), currentUser(c), form)
	if err == nil {
		setFlash(c, flashSuccess, "Your password has been changed.")
		c.Redirect(http.StatusSeeOther, "/view_account")
		return
	}

	if ve, ok := validation.As(err); ok {
		h.render(c, http.StatusUnprocessableEntity, "change_password.html", gin.H{
			"Title":  "Change password",
			"Errors": ve,
		})
		return
	}
	if errors.Is(err, accountapp.ErrNotFound) {
		h.sessionGone(c)
		return
	}
	h.fail(c, err)
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (h *handler) loginPage(c *gin.Context) {
	if currentUser(c) != uuid.Nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Log in",
		"Next":  safeNext(c.Query("next")),
	})
}

func (h *handler) login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	next := safeNext(form.Next)

	u, err := h.Accounts.Login(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, accountapp.ErrInvalidCredentials) {
		h.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{
			"Title":     "Log in",
			"Next":      next,
			"Email":     form.Email,
			"FormError": msgBadLogin,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.startSession(c, u.ID, u.Profile.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (h *handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   domain.RegisterRequest{},
		"Errors": (*validation.Error)(nil),
	})
}

func (h *handler) register(c *gin.Context) {
	var form domain.RegisterRequest
	_ = c.ShouldBind(&form)

	u, err := h.Accounts.Register(c.Request.Context(), form)
	if err == nil {
		if err := h.startSession(c, u.ID, u.Profile.Email); err != nil {
			h.fail(c, err)
			return
		}
		setFlash(c, flashSuccess, "Welcome, "+u.Profile.FirstName+"! Your account has been created.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ve, ok := validation.As(err)
	if errors.Is(err, accountapp.ErrEmailTaken) {
		ve, ok = validation.Field("email", accountapp.MsgEmailTaken), true
	}
	if !ok {
		h.fail(c, err)
		return
	}

	form.Password, form.PasswordConfirm = "", ""
	h.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{
		"Title":  "Register",
		"Form":   form,
		"Errors": ve,
	})
}

func (h *handler) logout(c *gin.Context) {
	h.clearSession(c)
	setFlash(c, flashInfo, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/")
}
