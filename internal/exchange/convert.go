package exchange

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("conversion amounts must not be negative")

// Conversion is the fully derived result of a currency conversion.
type Conversion struct {
	InputAmount  decimal.Decimal
	SourceCode   string
	TargetCode   string
	Rate         decimal.Decimal
	OutputAmount decimal.Decimal
}

// RateSource provides rate tables for a base currency.
type RateSource interface {
	FetchRates(ctx context.Context, base string) (RateTable, error)
}

// Converter converts amounts between currencies.
//
// Conversions are not cancelled when a newer one starts. Every conversion
// carries a monotonically increasing token; a completion only becomes the
// latest result if no newer conversion has been issued since, so a slow,
// stale response can never overwrite a newer one.
type Converter struct {
	source RateSource

	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  Conversion
	hasLast bool
}

// NewConverter returns a converter using the given rate source.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

// Convert converts a non-negative amount from one currency to another.
//
// Identical source and target codes, compared case-insensitively, convert
// with rate 1 without consulting the rate source. Negative amounts are
// rejected before any lookup.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Conversion, error) {
	if amount.IsNegative() {
		return Conversion{}, ErrNegativeAmount
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	token := c.issueToken()

	if from == to {
		conversion := Conversion{
			InputAmount:  amount,
			SourceCode:   from,
			TargetCode:   to,
			Rate:         decimal.NewFromInt(1),
			OutputAmount: amount,
		}
		c.apply(token, conversion)
		return conversion, nil
	}

	table, err := c.source.FetchRates(ctx, from)
	if err != nil {
		return Conversion{}, err
	}

	rate, err := table.Rate(to)
	if err != nil {
		return Conversion{}, err
	}

	conversion := Conversion{
		InputAmount:  amount,
		SourceCode:   from,
		TargetCode:   to,
		Rate:         rate,
		OutputAmount: amount.Mul(rate),
	}
	c.apply(token, conversion)
	return conversion, nil
}

// Latest returns the most recently issued conversion that has completed, and
// whether there is one. Results of conversions that were overtaken by a newer
// request are discarded.
func (c *Converter) Latest() (Conversion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.latest, c.hasLast
}

func (c *Converter) issueToken() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	return c.issued
}

func (c *Converter) apply(token uint64, conversion Conversion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token > c.applied {
		c.applied = token
		c.latest = conversion
		c.hasLast = true
	}
}
