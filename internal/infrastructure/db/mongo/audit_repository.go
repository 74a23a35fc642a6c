package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

const auditCollection = "api_logs"

// AuditRepository persists request audit records in MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ActorID    *string            `bson:"actor_id"`
	Endpoint   string             `bson:"endpoint"`
	Method     string             `bson:"method"`
	StatusCode int                `bson:"status_code"`
	ClientHost string             `bson:"client_host"`
	UserAgent  string             `bson:"user_agent,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func ensureAuditIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	doc := mongoAuditRecord{
		ActorID:    record.ActorID,
		Endpoint:   record.Endpoint,
		Method:     record.Method,
		StatusCode: record.StatusCode,
		ClientHost: record.ClientHost,
		UserAgent:  record.UserAgent,
		CreatedAt:  record.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert audit record: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter ports.AuditFilter) ([]*domain.AuditRecord, int64, error) {
	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count audit records: %v", domain.ErrStoreUnavailable, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list audit records: %v", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var records []*domain.AuditRecord
	for cur.Next(ctx) {
		var mr mongoAuditRecord
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, &domain.AuditRecord{
			ID:         mr.ID.Hex(),
			ActorID:    mr.ActorID,
			Endpoint:   mr.Endpoint,
			Method:     mr.Method,
			StatusCode: mr.StatusCode,
			ClientHost: mr.ClientHost,
			UserAgent:  mr.UserAgent,
			CreatedAt:  mr.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: list audit records: %v", domain.ErrStoreUnavailable, err)
	}
	return records, total, nil
}

func (r *AuditRepository) Counts(ctx context.Context, dayStart time.Time) (domain.AuditCounts, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return domain.AuditCounts{}, fmt.Errorf("%w: count audit records: %v", domain.ErrStoreUnavailable, err)
	}
	today, err := r.coll.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": dayStart}})
	if err != nil {
		return domain.AuditCounts{}, fmt.Errorf("%w: count today's audit records: %v", domain.ErrStoreUnavailable, err)
	}
	return domain.AuditCounts{Total: total, Today: today}, nil
}
