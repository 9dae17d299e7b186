package events

import (
	"time"

	"github.com/poskit/pos-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventTokenRefreshed EventType = "token_refreshed"
	EventRefreshFailed  EventType = "refresh_failed"
	EventLoggedOut      EventType = "logged_out"
)

// AllAuthEvents lists every session lifecycle event.
var AllAuthEvents = []EventType{
	EventLoginSucceeded,
	EventLoginFailed,
	EventTokenRefreshed,
	EventRefreshFailed,
	EventLoggedOut,
}

// Actor is the claimed (unverified) identity behind an event.
type Actor struct {
	SubjectID string      `json:"subject_id,omitempty"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
}

// Event represents a session event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Origin    string      `json:"origin"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// FailurePayload describes a rejected login or refresh.
type FailurePayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ActorFromIdentity copies the display fields of a decoded token.
func ActorFromIdentity(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{SubjectID: identity.SubjectID, Email: identity.Email, Role: identity.Role}
}
