package ports

import (
	"context"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// AuditFilter carries query parameters for browsing audit records.
type AuditFilter struct {
	ActorID string // optional: only records for this actor
	Skip    int
	Limit   int
}

// AuditRepository defines persistence operations for audit records.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	// List returns a page of records ordered by creation time, newest
	// first, plus the total count matching the filter.
	List(ctx context.Context, filter AuditFilter) ([]*domain.AuditRecord, int64, error)
	// Counts returns the total number of records and the number created
	// since midnight UTC of the given day.
	Counts(ctx context.Context, dayStart time.Time) (domain.AuditCounts, error)
}
