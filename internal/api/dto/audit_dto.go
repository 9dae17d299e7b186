package dto

import (
	"time"

	"github.com/poskit/pos-gateway/internal/domain"
)

// AuditEntry is one row of GET /api/audit.
type AuditEntry struct {
	EventID   string            `json:"eventId"`
	Action    domain.AuthAction `json:"action"`
	SubjectID *string           `json:"subjectId,omitempty"`
	Email     *string           `json:"email,omitempty"`
	Role      *domain.Role      `json:"role,omitempty"`
	Origin    string            `json:"origin"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AuditResponse lists audit entries; Enabled is false without an audit store.
type AuditResponse struct {
	Enabled bool         `json:"enabled"`
	Entries []AuditEntry `json:"entries"`
}

func NewAuditEntries(entries []domain.AuthAudit) []AuditEntry {
	out := make([]AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntry{
			EventID:   e.EventID,
			Action:    e.Action,
			SubjectID: e.SubjectID,
			Email:     e.Email,
			Role:      e.Role,
			Origin:    e.Origin,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
