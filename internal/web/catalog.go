package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

const msgEmptySearch = "Error: Empty search."

func (h *handler) home(c *gin.Context) {
	items, err := h.Catalog.ListItems(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "home.html", gin.H{"Title": "Home", "Items": items})
}

func (h *handler) browsePage(c *gin.Context) {
	h.render(c, http.StatusOK, "browse.html", gin.H{"Title": "Browse"})
}

type searchForm struct {
	Name string `form:"name"`
}

func (h *handler) search(c *gin.Context) {
	var form searchForm
	_ = c.ShouldBind(&form)

	items, err := h.Catalog.SearchItems(c.Request.Context(), form.Name)
	if errors.Is(err, catalogapp.ErrEmptySearch) {
		h.render(c, http.StatusOK, "browse.html", gin.H{
			"Title":  "Browse",
			"Errors": []string{msgEmptySearch},
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "browse.html", gin.H{
		"Title":    "Browse",
		"Query":    form.Name,
		"Searched": true,
		"Items":    items,
	})
}

func (h *handler) itemPage(c *gin.Context) {
	item, err := h.Catalog.GetItem(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, catalogapp.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "item.html", gin.H{"Title": item.Name, "Item": item})
}

type addForm struct {
	Quantity int `form:"quantity,default=1"`
}

func (h *handler) addToCart(c *gin.Context) {
	slug := c.Param("slug")
	back := "/item/" + slug

	var form addForm
	if err := c.ShouldBind(&form); err != nil {
		// Unparseable quantities are rejected by the service like zero.
		form.Quantity = 0
	}

	ctx := c.Request.Context()
	userID := currentUser(c)
	// A token can outlive its user; no line may be written for a user who
	// is gone.
	if userID != uuid.Nil {
		_, err := h.Accounts.GetUser(ctx, userID)
		if errors.Is(err, accountapp.ErrNotFound) {
			h.sessionGone(c)
			return
		}
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	_, err := h.Cart.AddToCart(ctx, userID, slug, form.Quantity)
	switch {
	case err == nil:
		setFlash(c, flashSuccess, "Item added to your cart.")
	case errors.Is(err, cartapp.ErrUnauthenticated):
		redirectToLogin(c, back, "You must be logged in to add items to your cart.")
		return
	case errors.Is(err, cartapp.ErrNotFound):
		h.notFound(c)
		return
	case errors.Is(err, cartapp.ErrDuplicateEntry):
		setFlash(c, flashInfo, "This item is already in your cart.")
	case errors.Is(err, cartapp.ErrInvalidRequest):
		setFlash(c, flashError, "Quantity must be at least 1.")
	default:
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, back)
}
