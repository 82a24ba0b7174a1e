package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountdomain "github.com/dwikikusuma/storefront/internal/account/domain"
	accountsqlite "github.com/dwikikusuma/storefront/internal/account/infra/sqlite"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartsqlite "github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	catalogsqlite "github.com/dwikikusuma/storefront/internal/catalog/infra/sqlite"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/pkg/sqlite/sqlitetest"
)

var errInjected = errors.New("injected failure")

type env struct {
	db       *gorm.DB
	accounts *accountapp.Service
	cart     *cartapp.Service
	checkout *app.Service
	user     uuid.UUID
}

func setup(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	db := sqlitetest.Open(t, &catalogsqlite.ItemRecord{}, &accountsqlite.UserRecord{}, &cartsqlite.CartLineRecord{})

	catalog := catalogapp.NewService(catalogsqlite.NewItemRepo(db))
	accounts := accountapp.NewService(accountsqlite.NewUserRepo(db), accountapp.WithHashCost(bcrypt.MinCost))
	cart := cartapp.NewService(cartsqlite.NewCartRepo(db), cartadapter.NewCatalogServiceReader(catalog))
	checkout := app.NewService(NewStore(db), adapter.NewCartServiceReader(cart), adapter.NewAccountServiceReader(accounts))

	for _, it := range []struct{ slug, name, price string }{
		{"shirt", "Shirt", "19.99"},
		{"socks", "Socks", "5.00"},
	} {
		_, err := catalog.CreateItem(ctx, catalogdomain.Item{Slug: it.slug, Name: it.name, Price: decimal.RequireFromString(it.price)})
		require.NoError(t, err)
	}

	u, err := accounts.Register(ctx, accountdomain.RegisterRequest{
		Email:           "buyer@example.com",
		FirstName:       "Bea",
		LastName:        "Buyer",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	require.NoError(t, err)

	_, err = cart.AddToCart(ctx, u.ID, "shirt", 1)
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, u.ID, "socks", 3)
	require.NoError(t, err)

	return env{db: db, accounts: accounts, cart: cart, checkout: checkout, user: u.ID}
}

func confirmation() domain.Confirmation {
	return domain.Confirmation{
		FirstName:  "Bea",
		LastName:   "Buyer",
		Email:      "buyer@example.com",
		Address:    "4 Market Row",
		City:       "Leeds",
		PostalCode: "LS1 6DT",
	}
}

func TestPreview(t *testing.T) {
	e := setup(t)

	p, err := e.checkout.Preview(context.Background(), e.user)
	require.NoError(t, err)
	assert.Equal(t, "34.99", p.Subtotal.StringFixed(2))
	assert.Len(t, p.Lines, 2)
	assert.Equal(t, "Bea", p.Confirmation.FirstName)
	assert.Equal(t, "buyer@example.com", p.Confirmation.Email)
}

func TestCheckoutClearsCartAndSavesProfile(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	r, err := e.checkout.Checkout(ctx, e.user, confirmation())
	require.NoError(t, err)
	assert.Equal(t, 2, r.LinesCleared)
	assert.Equal(t, "34.99", r.Subtotal.StringFixed(2))

	lines, err := e.cart.ListCart(ctx, e.user)
	require.NoError(t, err)
	assert.Empty(t, lines)

	u, err := e.accounts.GetUser(ctx, e.user)
	require.NoError(t, err)
	assert.Equal(t, "Leeds", u.Profile.City)

	again, err := e.checkout.Checkout(ctx, e.user, confirmation())
	require.NoError(t, err, "an empty cart checks out")
	assert.Zero(t, again.LinesCleared)
}

func TestCheckoutInvalidLeavesCart(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	c := confirmation()
	c.City = ""
	_, err := e.checkout.Checkout(ctx, e.user, c)
	require.Error(t, err)

	lines, err := e.cart.ListCart(ctx, e.user)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckoutRollsBack(t *testing.T) {
	cases := []struct {
		name     string
		register func(db *gorm.DB, fn func(*gorm.DB)) error
		table    string
	}{
		{
			name: "profile write fails",
			register: func(db *gorm.DB, fn func(*gorm.DB)) error {
				return db.Callback().Update().Before("gorm:update").Register("test:fail_users", fn)
			},
			table: "users",
		},
		{
			name: "cart clear fails after profile write",
			register: func(db *gorm.DB, fn func(*gorm.DB)) error {
				return db.Callback().Delete().Before("gorm:delete").Register("test:fail_cart_lines", fn)
			},
			table: "cart_lines",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := setup(t)
			ctx := context.Background()

			require.NoError(t, tc.register(e.db, func(tx *gorm.DB) {
				if tx.Statement.Table == tc.table {
					_ = tx.AddError(errInjected)
				}
			}))

			_, err := e.checkout.Checkout(ctx, e.user, confirmation())
			require.ErrorIs(t, err, errInjected)

			lines, err := e.cart.ListCart(ctx, e.user)
			require.NoError(t, err)
			assert.Len(t, lines, 2, "cart must be unchanged")

			u, err := e.accounts.GetUser(ctx, e.user)
			require.NoError(t, err)
			assert.Empty(t, u.Profile.City, "profile must be unchanged")
		})
	}
}

func TestCheckoutEmailTaken(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.accounts.Register(ctx, accountdomain.RegisterRequest{
		Email:           "taken@example.com",
		FirstName:       "T",
		LastName:        "T",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	require.NoError(t, err)

	c := confirmation()
	c.Email = "taken@example.com"
	_, err = e.checkout.Checkout(ctx, e.user, c)
	assert.ErrorIs(t, err, app.ErrEmailTaken)

	lines, err := e.cart.ListCart(ctx, e.user)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckoutUnknownUser(t *testing.T) {
	e := setup(t)
	_, err := e.checkout.Checkout(context.Background(), uuid.New(), confirmation())
	assert.ErrorIs(t, err, app.ErrNotFound)
}
