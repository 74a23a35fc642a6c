package ports

import (
	"context"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

// AuditService records request traces and serves the admin log views.
type AuditService interface {
	// Record persists one audit record. The caller treats failures as
	// best-effort; Record itself never panics.
	Record(ctx context.Context, record *domain.AuditRecord) error
	ListRecords(ctx context.Context, filter AuditFilter) ([]*domain.AuditRecord, int64, error)
	Stats(ctx context.Context) (domain.UserCounts, domain.AuditCounts, error)
}
