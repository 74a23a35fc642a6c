package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// symbolsWindow is how far back a pair must have data to count as
// available.
const symbolsWindow = 24 * time.Hour

// SymbolsCache is the optional read-through cache for the available
// symbols listing. A nil cache disables caching.
type SymbolsCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, symbols []string)
}

// MarketService serves order-book snapshots to authenticated callers.
type MarketService struct {
	repo  ports.MarketRepository
	cache SymbolsCache
	log   zerolog.Logger
}

func NewMarketService(repo ports.MarketRepository, cache SymbolsCache, log zerolog.Logger) *MarketService {
	return &MarketService{repo: repo, cache: cache, log: log}
}

// AvailableSymbols lists pairs with data inside the recent window. Cache
// failures fall through to the store; they are never surfaced.
func (s *MarketService) AvailableSymbols(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if symbols, ok := s.cache.Get(ctx); ok {
			return symbols, nil
		}
	}

	symbols, err := s.repo.AvailableSymbols(ctx, time.Now().UTC().Add(-symbolsWindow))
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, domain.ErrNoMarketData
	}

	if s.cache != nil {
		s.cache.Set(ctx, symbols)
		s.log.Debug().Int("symbols", len(symbols)).Msg("symbols cache refreshed")
	}
	return symbols, nil
}

// SymbolData returns up to limit snapshots for symbol, newest first.
func (s *MarketService) SymbolData(ctx context.Context, symbol string, limit int) (*ports.SymbolData, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	normalized := strings.ToUpper(symbol)
	data, err := s.repo.SymbolData(ctx, normalized, limit)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrNoMarketData
	}

	return &ports.SymbolData{
		Symbol:     normalized,
		Data:       data,
		DataPoints: len(data),
	}, nil
}
