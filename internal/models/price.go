package models

import (
	"github.com/shopspring/decimal"
)

// Price is a fixed-point monetary amount. All externally visible prices
// carry exactly two fractional digits; JSON uses a quoted decimal string
// ("6.00") so values never pass through binary floats.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price { return Price{d} }

// PriceFromString parses a decimal string such as "3.00".
func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return Price{d}, nil
}

// MustPrice is PriceFromString for constants and tests; panics on bad input.
func MustPrice(s string) Price {
	p, err := PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether p is non-negative with at most two fractional digits.
func (p Price) Valid() bool {
	return !p.IsNegative() && p.Equal(p.Round(2))
}

// MulQuantity returns p multiplied by an item quantity.
func (p Price) MulQuantity(qty int) Price {
	return Price{p.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (p Price) Add(other Price) Price {
	return Price{p.Decimal.Add(other.Decimal)}
}

func (p Price) String() string { return p.StringFixed(2) }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both quoted ("3.00") and bare (3.00) decimals.
func (p *Price) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}
