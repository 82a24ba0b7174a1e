package features

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountdomain "github.com/dwikikusuma/storefront/internal/account/domain"
	accountsqlite "github.com/dwikikusuma/storefront/internal/account/infra/sqlite"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartsqlite "github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	catalogsqlite "github.com/dwikikusuma/storefront/internal/catalog/infra/sqlite"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	checkoutsqlite "github.com/dwikikusuma/storefront/internal/checkout/infra/sqlite"
	"github.com/dwikikusuma/storefront/pkg/sqlite/sqlitetest"
	"github.com/dwikikusuma/storefront/pkg/validation"
)

type shopContext struct {
	t *testing.T

	catalog  *catalogapp.Service
	accounts *accountapp.Service
	cart     *cartapp.Service
	checkout *checkoutapp.Service

	user       uuid.UUID
	addErr     error
	removeErr  error
	checkErr   error
	receipt    checkoutdomain.Receipt
	successful int32
}

func (s *shopContext) reset() {
	db := sqlitetest.Open(s.t, &catalogsqlite.ItemRecord{}, &accountsqlite.UserRecord{}, &cartsqlite.CartLineRecord{})

	s.catalog = catalogapp.NewService(catalogsqlite.NewItemRepo(db))
	s.accounts = accountapp.NewService(accountsqlite.NewUserRepo(db), accountapp.WithHashCost(bcrypt.MinCost))
	s.cart = cartapp.NewService(cartsqlite.NewCartRepo(db), cartadapter.NewCatalogServiceReader(s.catalog))
	s.checkout = checkoutapp.NewService(
		checkoutsqlite.NewStore(db),
		checkoutadapter.NewCartServiceReader(s.cart),
		checkoutadapter.NewAccountServiceReader(s.accounts),
	)

	s.user = uuid.Nil
	s.addErr, s.removeErr, s.checkErr = nil, nil, nil
	s.receipt = checkoutdomain.Receipt{}
	s.successful = 0
}

func (s *shopContext) theCatalogHasItems(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		_, err = s.catalog.CreateItem(context.Background(), catalogdomain.Item{
			Slug:  row.Cells[0].Value,
			Name:  row.Cells[1].Value,
			Price: price,
			Stock: 10,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *shopContext) iAmSignedInAs(email string) error {
	u, err := s.accounts.Register(context.Background(), accountdomain.RegisterRequest{
		Email:           email,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Password:        "analytical",
		PasswordConfirm: "analytical",
	})
	if err != nil {
		return err
	}
	s.user = u.ID
	return nil
}

func (s *shopContext) iAmNotSignedIn() error {
	s.user = uuid.Nil
	return nil
}

func (s *shopContext) iAddToMyCart(qty int, slug string) error {
	_, s.addErr = s.cart.AddToCart(context.Background(), s.user, slug, qty)
	return nil
}

func (s *shopContext) iRemoveFromMyCart(slug string) error {
	_, s.removeErr = s.cart.RemoveFromCart(context.Background(), s.user, slug)
	return nil
}

func (s *shopContext) requestsAddAtTheSameTime(n, qty int, slug string) error {
	var ok atomic.Int32
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := s.cart.AddToCart(ctx, s.user, slug, qty)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, cartapp.ErrDuplicateEntry):
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.successful = ok.Load()
	return nil
}

func (s *shopContext) exactlyAddSucceeds(n int) error {
	if int(s.successful) != n {
		return fmt.Errorf("expected %d successful adds, got %d", n, s.successful)
	}
	return nil
}

func (s *shopContext) theLastAddIsRejectedAs(kind string) error {
	want := map[string]error{
		"a duplicate":     cartapp.ErrDuplicateEntry,
		"unauthenticated": cartapp.ErrUnauthenticated,
	}[kind]
	if want == nil {
		return fmt.Errorf("unknown rejection %q", kind)
	}
	if !errors.Is(s.addErr, want) {
		return fmt.Errorf("expected %v, got %v", want, s.addErr)
	}
	return nil
}

func (s *shopContext) theRemovalIsRejectedAsNotFound() error {
	if !errors.Is(s.removeErr, cartapp.ErrNotFound) {
		return fmt.Errorf("expected ErrNotFound, got %v", s.removeErr)
	}
	return nil
}

func (s *shopContext) myCartHasLines(n int) error {
	lines, err := s.cart.ListCart(context.Background(), s.user)
	if err != nil {
		return err
	}
	if len(lines) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(lines))
	}
	return nil
}

func (s *shopContext) theLineForHasQuantity(slug string, qty int) error {
	lines, err := s.cart.ListCart(context.Background(), s.user)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if l.ItemSlug == slug {
			if l.Quantity != qty {
				return fmt.Errorf("expected quantity %d, got %d", qty, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %q", slug)
}

func (s *shopContext) mySubtotalIs(want string) error {
	got, err := s.cart.ComputeSubtotal(context.Background(), s.user)
	if err != nil {
		return err
	}
	if got.StringFixed(2) != want {
		return fmt.Errorf("expected subtotal %s, got %s", want, got.StringFixed(2))
	}
	return nil
}

func completeAddress() checkoutdomain.Confirmation {
	return checkoutdomain.Confirmation{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Address:    "12 St James's Square",
		City:       "London",
		PostalCode: "SW1Y 4JH",
	}
}

func (s *shopContext) iCheckOutWithACompleteAddress() error {
	s.receipt, s.checkErr = s.checkout.Checkout(context.Background(), s.user, completeAddress())
	return nil
}

func (s *shopContext) iCheckOutWithoutACity() error {
	c := completeAddress()
	c.City = ""
	s.receipt, s.checkErr = s.checkout.Checkout(context.Background(), s.user, c)
	return nil
}

func (s *shopContext) theReceiptShowsASubtotalOfOverLines(want string, n int) error {
	if s.checkErr != nil {
		return fmt.Errorf("checkout failed: %w", s.checkErr)
	}
	if s.receipt.Subtotal.StringFixed(2) != want || s.receipt.LinesCleared != n {
		return fmt.Errorf("expected %s over %d lines, got %s over %d", want, n, s.receipt.Subtotal.StringFixed(2), s.receipt.LinesCleared)
	}
	return nil
}

func (s *shopContext) theCheckoutIsRejectedWithAnErrorOn(field string) error {
	ve, ok := validation.As(s.checkErr)
	if !ok {
		return fmt.Errorf("expected validation error, got %v", s.checkErr)
	}
	if len(ve.For(field)) == 0 {
		return fmt.Errorf("expected an error on %q, got %v", field, ve)
	}
	return nil
}

func initializeScenario(t *testing.T, ctx *godog.ScenarioContext) {
	sc := &shopContext{t: t}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the catalog has items:$`, sc.theCatalogHasItems)
	ctx.Step(`^I am signed in as "([^"]*)"$`, sc.iAmSignedInAs)
	ctx.Step(`^I am not signed in$`, sc.iAmNotSignedIn)

	// When
	ctx.Step(`^I add (\d+) of "([^"]*)" to my cart$`, sc.iAddToMyCart)
	ctx.Step(`^I remove "([^"]*)" from my cart$`, sc.iRemoveFromMyCart)
	ctx.Step(`^(\d+) requests add (\d+) of "([^"]*)" at the same time$`, sc.requestsAddAtTheSameTime)
	ctx.Step(`^I check out with a complete address$`, sc.iCheckOutWithACompleteAddress)
	ctx.Step(`^I check out without a city$`, sc.iCheckOutWithoutACity)

	// Then
	ctx.Step(`^the last add is rejected as (a duplicate|unauthenticated)$`, sc.theLastAddIsRejectedAs)
	ctx.Step(`^the removal is rejected as not found$`, sc.theRemovalIsRejectedAsNotFound)
	ctx.Step(`^exactly (\d+) add succeeds$`, sc.exactlyAddSucceeds)
	ctx.Step(`^my cart has (\d+) lines?$`, sc.myCartHasLines)
	ctx.Step(`^the line for "([^"]*)" has quantity (\d+)$`, sc.theLineForHasQuantity)
	ctx.Step(`^my subtotal is "([^"]*)"$`, sc.mySubtotalIs)
	ctx.Step(`^the receipt shows a subtotal of "([^"]*)" over (\d+) lines$`, sc.theReceiptShowsASubtotalOfOverLines)
	ctx.Step(`^the checkout is rejected with an error on "([^"]*)"$`, sc.theCheckoutIsRejectedWithAnErrorOn)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) { initializeScenario(t, ctx) },
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
