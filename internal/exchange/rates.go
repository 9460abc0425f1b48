// Package exchange fetches exchange rates and converts amounts between
// currencies.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrRateFetchFailed = errors.New("the exchange rate service could not be reached")
	ErrMalformedRates  = errors.New("the exchange rate response could not be decoded")
	ErrUnknownCurrency = errors.New("the exchange rate service does not know this currency")
)

// tipCurrencies are the fixed currencies summarized relative to USD.
var tipCurrencies = []string{"KZT", "EUR", "GBP"}

// RateTable holds the exchange rates for one base currency.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// Rate returns the rate from the base currency to the given code. A missing
// code is a data-format failure of the rate service.
func (t RateTable) Rate(code string) (decimal.Decimal, error) {
	rate, ok := t.Rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Tip renders the table as a multi-line summary of the fixed tip currencies
// relative to the table's base.
func (t RateTable) Tip() string {
	lines := make([]string, 0, len(tipCurrencies))

	for _, code := range tipCurrencies {
		rate, ok := t.Rates[code]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("1 %s = %s %s", t.Base, rate.StringFixed(2), code))
	}

	return strings.Join(lines, "\n")
}

// Client fetches rate tables from an exchange rate HTTP API.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a rate client for the endpoint. The base currency code
// is appended to the endpoint path per request.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// FetchRates requests the rate table for the base currency.
func (c *Client) FetchRates(ctx context.Context, base string) (RateTable, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	url := c.endpoint + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: %s", ErrRateFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: %s", ErrRateFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("exchange rate request failed")
		return RateTable{}, fmt.Errorf("%w: status %d", ErrRateFetchFailed, resp.StatusCode)
	}

	var decoded ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return RateTable{}, fmt.Errorf("%w: %s", ErrMalformedRates, err)
	}

	if len(decoded.Rates) == 0 {
		return RateTable{}, fmt.Errorf("%w: empty rate table", ErrMalformedRates)
	}

	if decoded.BaseCode == "" {
		decoded.BaseCode = base
	}

	return RateTable{Base: decoded.BaseCode, Rates: decoded.Rates}, nil
}
