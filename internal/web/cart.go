package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
)

func (h *handler) cartPage(c *gin.Context) {
	sum, err := h.Cart.Summary(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "view_cart.html", gin.H{"Title": "Cart", "Summary": sum})
}

type removeForm struct {
	Item string `form:"item"`
}

func (h *handler) removeFromCart(c *gin.Context) {
	var form removeForm
	_ = c.ShouldBind(&form)

	name, err := h.Cart.RemoveFromCart(c.Request.Context(), currentUser(c), form.Item)
	switch {
	case err == nil:
		setFlash(c, flashSuccess, "Removed "+name+" from your cart.")
	case errors.Is(err, cartapp.ErrNotFound):
		setFlash(c, flashError, "That item is not in your cart.")
	case errors.Is(err, cartapp.ErrInvalidRequest):
		setFlash(c, flashError, "Invalid request.")
	default:
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/view_cart")
}
