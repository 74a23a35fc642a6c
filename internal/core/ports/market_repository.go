package ports

import (
	"context"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// MarketRepository reads order-book snapshots from the analytical store.
type MarketRepository interface {
	// AvailableSymbols lists trading pairs with at least one snapshot
	// newer than since.
	AvailableSymbols(ctx context.Context, since time.Time) ([]string, error)
	// SymbolData returns up to limit snapshots for symbol, newest first.
	SymbolData(ctx context.Context, symbol string, limit int) ([]domain.OrderBookSnapshot, error)
}
