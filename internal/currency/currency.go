// Package currency holds the currency reference data of the app.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
)

// Option is a currency the user can pick in the app.
type Option struct {
	Code   string
	Name   string
	Symbol string
}

// options are the currencies offered by the app, in display order.
var options = []Option{
	{Code: "KZT", Name: "Kazakhstani Tenge", Symbol: "KZT"},
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "EUR"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "RUB"},
	{Code: "GBP", Name: "British Pound", Symbol: "GBP"},
}

// Options returns the currencies the user can pick from.
func Options() []Option {
	return append([]Option(nil), options...)
}

// IsOption reports whether the code is one of the app's currency options.
func IsOption(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, option := range options {
		if option.Code == code {
			return true
		}
	}
	return false
}

// Valid reports whether the code is a well-formed ISO 4217 currency code.
func Valid(code string) bool {
	_, err := xcurrency.ParseISO(strings.TrimSpace(code))
	return err == nil
}

// Symbol returns the display symbol for a currency code. Unknown codes are
// shown as the code itself.
func Symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, option := range options {
		if option.Code == code {
			return option.Symbol
		}
	}
	return code
}

// Format renders an amount with the currency's symbol and two fraction
// digits.
func Format(amount decimal.Decimal, code string) string {
	return Symbol(code) + " " + amount.StringFixed(2)
}
