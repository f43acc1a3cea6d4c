package models

import "time"

// AuthResponse covers the replies of both the backend auth endpoints and the mock auth server.
type AuthResponse struct {
	Success  *bool  `json:"success,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Message  string `json:"message,omitempty"`
	Token    string `json:"token,omitempty"`
	Name     string `json:"name,omitempty"`
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Text returns the human readable part of the reply, if any.
func (r *AuthResponse) Text() string {
	if r == nil {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	return r.Detail
}

// LoginRequest is the body posted to the backend session login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body posted to the backend registration endpoint.
type RegisterRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Nickname         string `json:"nickname,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

// Auth event types published by the mock auth server.
const (
	EventRegistered  = "registered"
	EventLoggedIn    = "logged_in"
	EventLoginFailed = "login_failed"
)

// AuthEvent is published to the auth events queue after register and login attempts.
type AuthEvent struct {
	Type  string    `json:"type"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
	At    time.Time `json:"at"`
}
