package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/validation"
)

func (h *handler) checkoutPage(c *gin.Context) {
	p, err := h.Checkout.Preview(c.Request.Context(), currentUser(c))
	if errors.Is(err, checkoutapp.ErrNotFound) {
		h.sessionGone(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "checkout.html", gin.H{
		"Title":   "Checkout",
		"Preview": p,
		"Form":    p.Confirmation,
		"Errors":  (*validation.Error)(nil),
	})
}

func (h *handler) checkout(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	var form domain.Confirmation
	_ = c.ShouldBind(&form)

	receipt, err := h.Checkout.Checkout(ctx, userID, form)
	if err == nil {
		setFlash(c, flashSuccess, fmt.Sprintf("Thank you for your order! Your total was $%s.", receipt.Subtotal.StringFixed(2)))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ve, ok := validation.As(err)
	if errors.Is(err, checkoutapp.ErrEmailTaken) {
		ve, ok = validation.Field("email", accountapp.MsgEmailTaken), true
	}
	switch {
	case ok:
		p, perr := h.Checkout.Preview(ctx, userID)
		if perr != nil {
			h.fail(c, perr)
			return
		}
		h.render(c, http.StatusUnprocessableEntity, "checkout.html", gin.H{
			"Title":   "Checkout",
			"Preview": p,
			"Form":    form,
			"Errors":  ve,
		})
	case errors.Is(err, checkoutapp.ErrNotFound):
		h.sessionGone(c)
	default:
		h.fail(c, err)
	}
}
