package ports

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// SymbolData bundles snapshots for one trading pair.
type SymbolData struct {
	Symbol     string                     `json:"symbol"`
	Data       []domain.OrderBookSnapshot `json:"data"`
	DataPoints int                        `json:"data_points"`
}

// MarketService serves order-book data to authenticated callers.
type MarketService interface {
	// AvailableSymbols lists pairs with data in the recent window.
	AvailableSymbols(ctx context.Context) ([]string, error)
	// SymbolData returns up to limit snapshots, newest first.
	SymbolData(ctx context.Context, symbol string, limit int) (*SymbolData, error)
}
