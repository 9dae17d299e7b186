package dto

import (
	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/domain"
)

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OKResponse is returned by the session routes on success.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the error envelope rendered for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// NavResponse describes the navigation available to the caller.
type NavResponse struct {
	Role     domain.Role       `json:"role"`
	Email    string            `json:"email,omitempty"`
	Home     string            `json:"home"`
	Sections []auth.NavSection `json:"sections"`
}
