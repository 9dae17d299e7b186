package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/events"
	"github.com/poskit/pos-gateway/internal/repository"
	apperrors "github.com/poskit/pos-gateway/pkg/util/errorutil"
)

var auditActions = map[events.EventType]domain.AuthAction{
	events.EventLoginSucceeded: domain.AuthActionLogin,
	events.EventLoginFailed:    domain.AuthActionLoginFailed,
	events.EventTokenRefreshed: domain.AuthActionRefresh,
	events.EventRefreshFailed:  domain.AuthActionRefreshFailed,
	events.EventLoggedOut:      domain.AuthActionLogout,
}

// AuditService records session events in the audit trail.
type AuditService struct {
	dispatcher events.Dispatcher
	repo       repository.AuthAuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service. Without a repository events are only logged.
func NewAuditService(dispatcher events.Dispatcher, repo repository.AuthAuditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		repo:       repo,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every session event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllAuthEvents {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	entry := AuditEntryFromEvent(event)

	a.logger.Info("auth event",
		zap.String("event_id", entry.EventID),
		zap.String("action", string(entry.Action)),
		zap.String("origin", entry.Origin),
		zap.String("subject_id", event.Actor.SubjectID))

	if a.repo == nil {
		return nil
	}
	return a.repo.Create(ctx, entry)
}

// DefaultAuditLimit bounds Recent when no limit is given.
const DefaultAuditLimit = 50

// Enabled reports whether entries are persisted.
func (a *AuditService) Enabled() bool {
	return a != nil && a.repo != nil
}

// Recent returns the newest audit entries, at most limit (capped at 200).
func (a *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuthAudit, error) {
	if !a.Enabled() {
		return []domain.AuthAudit{}, nil
	}
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	limit = min(limit, 200)
	entries, err := a.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if entries == nil {
		entries = []domain.AuthAudit{}
	}
	return entries, nil
}

// AuditEntryFromEvent maps an event onto its audit row.
func AuditEntryFromEvent(event events.Event) *domain.AuthAudit {
	entry := &domain.AuthAudit{
		EventID:   event.ID,
		Action:    auditActions[event.Type],
		Origin:    event.Origin,
		CreatedAt: event.Timestamp,
	}
	if event.Actor.SubjectID != "" {
		entry.SubjectID = &event.Actor.SubjectID
	}
	if event.Actor.Email != "" {
		entry.Email = &event.Actor.Email
	}
	if event.Actor.Role != "" {
		role := event.Actor.Role
		entry.Role = &role
	}
	if event.Payload != nil {
		if raw, err := json.Marshal(event.Payload); err == nil {
			detail := string(raw)
			entry.Detail = &detail
		}
	}
	return entry
}
