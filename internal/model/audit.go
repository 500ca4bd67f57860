package model

import "time"

type AuditActor struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	IP       string `json:"ip,omitempty"`
}

type AuditEntry struct {
	ID         string     `json:"id"`
	Action     string     `json:"action"`
	OccurredAt time.Time  `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	BrandID    string     `json:"brand_id,omitempty"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Detail     any        `json:"detail,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type AuditQuery struct {
	Action  string
	Actor   string
	BrandID string
	Status  string
	Page    int
	Limit   int
}

type AuditListData struct {
	Items []AuditEntry `json:"items"`
}
