package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coupon-generator/internal/model"
	"coupon-generator/pkg/apierror"
)

const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
	AuditStatusPartial = "partial"

	auditWriteTimeout = 5 * time.Second
)

// AuditStore persists audit entries. repository.AuditRepository implements it.
type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// AuditService records who did what. Every entry is logged; it is also
// stored when a store is configured.
type AuditService struct {
	store AuditStore
	now   func() time.Time
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

func (s *AuditService) Enabled() bool {
	return s != nil && s.store != nil
}

func (s *AuditService) Log(ctx context.Context, entry model.AuditEntry) {
	if s == nil {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.now().UTC()
	}

	slog.InfoContext(ctx, "audit",
		"audit_id", entry.ID,
		"action", entry.Action,
		"status", entry.Status,
		"actor", entry.Actor.Username,
		"ip", entry.Actor.IP,
		"brand_id", entry.BrandID,
		"resource", entry.Resource,
		"error", entry.Error,
	)

	if s.store == nil {
		return
	}

	// The entry outlives a cancelled request.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if err := s.store.Log(writeCtx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to store audit entry", "audit_id", entry.ID, "error", err)
	}
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if !s.Enabled() {
		return nil, model.Meta{}, apierror.NotFound(model.ErrAuditDisabled.Error())
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	items, meta, err := s.store.Query(ctx, query)
	if err != nil {
		return nil, model.Meta{}, apierror.Internal("failed to query audit log", err)
	}

	return items, meta, nil
}
