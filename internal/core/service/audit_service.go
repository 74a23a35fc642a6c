package service

import (
	"context"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// AuditService persists request traces and serves the admin log views.
type AuditService struct {
	records ports.AuditRepository
	users   ports.UserRepository
}

func NewAuditService(records ports.AuditRepository, users ports.UserRepository) *AuditService {
	return &AuditService{records: records, users: users}
}

// Record persists one audit record. Errors are returned to the caller,
// which decides whether they are fatal; the audit middleware discards
// them after logging.
func (s *AuditService) Record(ctx context.Context, record *domain.AuditRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return s.records.Insert(ctx, record)
}

func (s *AuditService) ListRecords(ctx context.Context, filter ports.AuditFilter) ([]*domain.AuditRecord, int64, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.records.List(ctx, filter)
}

// Stats aggregates account and audit-log totals for the admin dashboard.
func (s *AuditService) Stats(ctx context.Context) (domain.UserCounts, domain.AuditCounts, error) {
	userCounts, err := s.users.Counts(ctx)
	if err != nil {
		return domain.UserCounts{}, domain.AuditCounts{}, err
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	auditCounts, err := s.records.Counts(ctx, dayStart)
	if err != nil {
		return domain.UserCounts{}, domain.AuditCounts{}, err
	}
	return userCounts, auditCounts, nil
}
