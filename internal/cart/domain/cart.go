package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one (user, item, quantity) record. A user holds at most one
// line per item; quantity is fixed when the line is created.
type CartLine struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Quantity  int
	CreatedAt time.Time
}

// Line is a CartLine resolved against the item's current catalog entry.
type Line struct {
	ItemSlug  string
	ItemName  string
	ItemImage string
	UnitPrice decimal.Decimal
	Quantity  int
	AddedAt   time.Time
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Summary struct {
	Lines    []Line
	Subtotal decimal.Decimal
}

// Subtotal is the sum of price x quantity over lines, rounded to cents.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total.Round(2)
}
