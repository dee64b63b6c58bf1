package app

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/attestlab/attestd/internal/abihash"
	"github.com/attestlab/attestd/internal/errors"
)

// QuoteScale is the fixed-point scale of quoted prices: values carry 8
// fractional decimal digits.
const QuoteScale = 8

// Quote is the computed output of the quote module.
type Quote struct {
	Symbol string
	Price  *big.Int // fixed-point, QuoteScale fractional digits
}

// QuoteSource supplies fixed-point prices for symbols. Implementations may
// block on I/O; they are called once per request from Compute.
type QuoteSource interface {
	Price(ctx context.Context, symbol string) (*big.Int, error)
}

// QuoteModule attests to the price of a symbol at request time. The price
// itself comes from a pluggable source; the module's job is shaping the
// result into commitment fields.
type QuoteModule struct {
	source QuoteSource
}

// NewQuoteModule creates a quote module backed by the given source.
func NewQuoteModule(source QuoteSource) *QuoteModule {
	return &QuoteModule{source: source}
}

// Name implements Module.
func (m *QuoteModule) Name() string { return "quote" }

// Compute looks up the price for the required "symbol" parameter.
func (m *QuoteModule) Compute(ctx context.Context, sctx *Context) (Result, error) {
	symbol, ok := sctx.Params["symbol"].(string)
	if !ok || symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidParams, "symbol must be a non-empty string")
	}
	symbol = strings.ToUpper(symbol)

	price, err := m.source.Price(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to quote %s", symbol)
	}

	return &Quote{Symbol: symbol, Price: price}, nil
}

// SignedFields commits to the symbol, its fixed-point price, and the scale.
func (m *QuoteModule) SignedFields(_ *Context, result Result) ([]abihash.Field, error) {
	q, ok := result.(*Quote)
	if !ok {
		return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "quote result is %T", result)
	}
	// The price travels as a decimal string so the JSON form of the signed
	// fields re-hashes to the same bytes on the consumer side.
	return []abihash.Field{
		{Name: "symbol", Type: abihash.TypeString, Value: q.Symbol},
		{Name: "price", Type: abihash.TypeUint256, Value: q.Price.String()},
		{Name: "scale", Type: abihash.TypeUint8, Value: uint8(QuoteScale)},
	}, nil
}

// StaticQuoteSource is an in-memory QuoteSource seeded with a fixed table.
// It serves deployments that pin prices out of band and, in tests, stands in
// for a market-data client.
type StaticQuoteSource struct {
	mu     sync.RWMutex
	prices map[string]*big.Int
}

// NewStaticQuoteSource creates a source from a symbol -> fixed-point price
// table. The map is copied.
func NewStaticQuoteSource(prices map[string]*big.Int) *StaticQuoteSource {
	cp := make(map[string]*big.Int, len(prices))
	for sym, p := range prices {
		cp[strings.ToUpper(sym)] = new(big.Int).Set(p)
	}
	return &StaticQuoteSource{prices: cp}
}

// Price implements QuoteSource.
func (s *StaticQuoteSource) Price(_ context.Context, symbol string) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prices[strings.ToUpper(symbol)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "unknown symbol %q", symbol)
	}
	return new(big.Int).Set(p), nil
}

// SetPrice updates or inserts a price. Safe for concurrent use.
func (s *StaticQuoteSource) SetPrice(symbol string, price *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[strings.ToUpper(symbol)] = new(big.Int).Set(price)
}
