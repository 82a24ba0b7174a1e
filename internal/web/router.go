// Package web serves the storefront's HTML pages over gin. Handlers parse the
// form, call one service command or query with an explicit user ID, and then
// either redirect with a flash message or render a template.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/pkg/authtoken"
	"github.com/dwikikusuma/storefront/pkg/metrics"
)

type Services struct {
	Catalog  *catalogapp.Service
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service
	Accounts *accountapp.Service
}

type Options struct {
	Tokens       *authtoken.Issuer
	CookieSecure bool
	Metrics      *metrics.ServerMetrics
	Logger       *slog.Logger
}

type handler struct {
	Services
	tokens       *authtoken.Issuer
	cookieSecure bool
	log          *slog.Logger
}

func NewRouter(svc Services, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	h := &handler{
		Services:     svc,
		tokens:       opts.Tokens,
		cookieSecure: opts.CookieSecure,
		log:          log,
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(mustTemplates())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(requestLogger(log), recovery(log), h.authenticate())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// Catalog
	r.GET("/", h.home)
	r.GET("/browse", h.browsePage)
	r.POST("/browse", h.search)
	r.GET("/item/:slug", h.itemPage)
	r.POST("/item/:slug", h.addToCart)

	// Accounts (public)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/register", h.registerPage)
	r.POST("/register", h.register)
	r.POST("/logout", h.logout)

	// Signed-in pages
	auth := r.Group("", requireLogin())
	{
		auth.GET("/view_cart", h.cartPage)
		auth.POST("/view_cart", h.removeFromCart)

		auth.GET("/checkout", h.checkoutPage)
		auth.POST("/checkout", h.checkout)

		auth.GET("/view_account", h.accountPage)
		auth.GET("/update_account", h.updateAccountPage)
		auth.POST("/update_account", h.updateAccount)
		auth.GET("/change_password", h.changePasswordPage)
		auth.POST("/change_password", h.changePassword)
	}

	r.NoRoute(h.notFound)
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return r
}
