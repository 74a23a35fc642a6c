package mongo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

const orderBooksCollection = "order_books"

// MarketRepository reads order-book snapshots written by the ingestion
// pipeline. This service only ever reads the collection.
type MarketRepository struct {
	coll *mongo.Collection
}

func NewMarketRepository(db *mongo.Database) *MarketRepository {
	return &MarketRepository{coll: db.Collection(orderBooksCollection)}
}

func ensureMarketIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(orderBooksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "symbol", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create order_books index: %w", err)
	}
	return nil
}

func (r *MarketRepository) AvailableSymbols(ctx context.Context, since time.Time) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "symbol", bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, fmt.Errorf("%w: distinct symbols: %v", domain.ErrStoreUnavailable, err)
	}

	symbols := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (r *MarketRepository) SymbolData(ctx context.Context, symbol string, limit int) ([]domain.OrderBookSnapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"symbol": symbol}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find snapshots: %v", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var snapshots []domain.OrderBookSnapshot
	if err := cur.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("%w: decode snapshots: %v", domain.ErrStoreUnavailable, err)
	}
	return snapshots, nil
}
