package domain

import "time"

// AuthAction names a session lifecycle step recorded in the audit trail.
type AuthAction string

const (
	AuthActionLogin         AuthAction = "LOGIN"
	AuthActionLoginFailed   AuthAction = "LOGIN_FAILED"
	AuthActionRefresh       AuthAction = "REFRESH"
	AuthActionRefreshFailed AuthAction = "REFRESH_FAILED"
	AuthActionLogout        AuthAction = "LOGOUT"
)

// AuthAudit is one persisted session event.
type AuthAudit struct {
	ID        int64
	EventID   string
	Action    AuthAction
	SubjectID *string
	Email     *string
	Role      *Role
	Origin    string
	Detail    *string
	CreatedAt time.Time
}
