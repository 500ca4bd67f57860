package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"coupon-generator/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	var detailJSON []byte
	if entry.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (id, action, occurred_at, actor_username, actor_role, actor_ip,
		  brand_id, status, resource, detail, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.Action, entry.OccurredAt,
		entry.Actor.Username, entry.Actor.Role, entry.Actor.IP,
		entry.BrandID, entry.Status, entry.Resource, detailJSON, entry.Error)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	where, args := auditFilters(query)
	argIdx := len(args) + 1

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM audit_entries %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + query.Limit - 1) / query.Limit
	}
	meta := model.Meta{Page: query.Page, Limit: query.Limit, Total: total, TotalPages: totalPages}

	offset := (query.Page - 1) * query.Limit
	dataQuery := fmt.Sprintf(
		`SELECT id::text, action, occurred_at, actor_username, actor_role, actor_ip,
		        brand_id, status, resource, detail, error_text
		 FROM audit_entries %s
		 ORDER BY occurred_at DESC
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, query.Limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var occurredAt time.Time
		var detailJSON []byte

		if err := rows.Scan(
			&e.ID, &e.Action, &occurredAt,
			&e.Actor.Username, &e.Actor.Role, &e.Actor.IP,
			&e.BrandID, &e.Status, &e.Resource, &detailJSON, &e.Error,
		); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}

		e.OccurredAt = occurredAt.UTC()
		if len(detailJSON) > 0 {
			var detail any
			if jsonErr := json.Unmarshal(detailJSON, &detail); jsonErr == nil {
				e.Detail = detail
			}
		}

		entries = append(entries, e)
	}

	return entries, meta, rows.Err()
}

// auditFilters builds the WHERE terms for a query with positional arguments.
func auditFilters(query model.AuditQuery) ([]string, []any) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(term string, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf(term, len(args)))
	}

	add("lower(action) = lower($%d)", query.Action)
	add("lower(actor_username) = lower($%d)", query.Actor)
	add("brand_id = $%d", query.BrandID)
	add("lower(status) = lower($%d)", query.Status)

	return where, args
}
