package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountdomain "github.com/dwikikusuma/storefront/internal/account/domain"
)

// Confirmation is the contact and shipping data the user confirms when
// checking out. It is the account profile itself, so checkout and the
// account page share one set of field rules and normalization.
type Confirmation = accountdomain.Profile

type PreviewLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Preview is what the checkout page shows before confirmation.
type Preview struct {
	Confirmation Confirmation
	Lines        []PreviewLine
	Subtotal     decimal.Decimal
}

type Receipt struct {
	UserID       uuid.UUID
	Email        string
	Subtotal     decimal.Decimal
	LinesCleared int
}
