package exchange_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns canned rate tables and counts its calls.
type fakeSource struct {
	mu     sync.Mutex
	calls  int
	tables map[string]exchange.RateTable
	block  chan struct{}
}

func (s *fakeSource) FetchRates(_ context.Context, base string) (exchange.RateTable, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	table, ok := s.tables[base]
	if !ok {
		return exchange.RateTable{}, exchange.ErrRateFetchFailed
	}
	return table, nil
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func usdTable() exchange.RateTable {
	return exchange.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"KZT": decimal.NewFromFloat(470.25),
			"EUR": decimal.NewFromFloat(0.92),
		},
	}
}

func TestConvert(t *testing.T) {
	source := &fakeSource{tables: map[string]exchange.RateTable{"USD": usdTable()}}
	converter := exchange.NewConverter(source)

	conversion, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "USD", "KZT")
	require.NoError(t, err)

	assert.Equal(t, "USD", conversion.SourceCode)
	assert.Equal(t, "KZT", conversion.TargetCode)
	assert.True(t, decimal.NewFromFloat(470.25).Equal(conversion.Rate))
	assert.True(t, decimal.NewFromFloat(47025).Equal(conversion.OutputAmount))

	latest, ok := converter.Latest()
	require.True(t, ok)
	assert.Equal(t, conversion, latest)
}

func TestConvertIdentity(t *testing.T) {
	source := &fakeSource{tables: map[string]exchange.RateTable{}}
	converter := exchange.NewConverter(source)

	conversion, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "usd", "USD")
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1).Equal(conversion.Rate))
	assert.True(t, decimal.NewFromInt(100).Equal(conversion.OutputAmount))
	assert.Equal(t, 0, source.callCount(), "identity conversions never hit the network")
}

func TestConvertNegativeAmount(t *testing.T) {
	source := &fakeSource{tables: map[string]exchange.RateTable{"USD": usdTable()}}
	converter := exchange.NewConverter(source)

	_, err := converter.Convert(context.Background(), decimal.NewFromInt(-1), "USD", "KZT")

	assert.ErrorIs(t, err, exchange.ErrNegativeAmount)
	assert.Equal(t, 0, source.callCount(), "validation happens before any lookup")
}

func TestConvertUnknownTarget(t *testing.T) {
	source := &fakeSource{tables: map[string]exchange.RateTable{"USD": usdTable()}}
	converter := exchange.NewConverter(source)

	_, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "USD", "XXX")

	assert.ErrorIs(t, err, exchange.ErrUnknownCurrency)
}

func TestConvertErrorKeepsLatest(t *testing.T) {
	source := &fakeSource{tables: map[string]exchange.RateTable{"USD": usdTable()}}
	converter := exchange.NewConverter(source)

	first, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "USD", "KZT")
	require.NoError(t, err)

	_, err = converter.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "KZT")
	require.Error(t, err)

	latest, ok := converter.Latest()
	require.True(t, ok)
	assert.Equal(t, first, latest, "a failed conversion does not replace the latest result")
}

func TestConvertStaleResultDiscarded(t *testing.T) {
	block := make(chan struct{})
	source := &fakeSource{
		tables: map[string]exchange.RateTable{"USD": usdTable()},
		block:  block,
	}
	converter := exchange.NewConverter(source)

	// Start a conversion that hangs in the rate source.
	done := make(chan exchange.Conversion)
	go func() {
		conversion, err := converter.Convert(context.Background(), decimal.NewFromInt(100), "USD", "KZT")
		require.NoError(t, err)
		done <- conversion
	}()

	// Wait until the slow request is in flight.
	for source.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	// A newer identity conversion completes while the first one hangs.
	source.mu.Lock()
	source.block = nil
	source.mu.Unlock()

	newer, err := converter.Convert(context.Background(), decimal.NewFromInt(50), "EUR", "EUR")
	require.NoError(t, err)

	// Let the stale conversion finish.
	close(block)
	stale := <-done

	// The stale completion returned to its caller but is not the latest.
	assert.True(t, decimal.NewFromFloat(47025).Equal(stale.OutputAmount))

	latest, ok := converter.Latest()
	require.True(t, ok)
	assert.Equal(t, newer, latest, "out-of-order completions are discarded")
}
