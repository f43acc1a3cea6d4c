package models

import "strings"

// User is a record of the local mock auth store.
type User struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Password string `json:"password" gorm:"type:varchar(255)" validate:"required"`
}

// Me is the backend's view of the currently authenticated identity.
type Me struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Nickname    *string `json:"nickname,omitempty"`
	Email       *string `json:"email,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	IsAdmin     *bool   `json:"is_admin,omitempty"`
	IsRootAdmin *bool   `json:"is_root_admin,omitempty"`
}

// HasNickname reports whether the nickname is present and not blank.
func (m *Me) HasNickname() bool {
	return m != nil && m.Nickname != nil && strings.TrimSpace(*m.Nickname) != ""
}

// NicknameValue returns the nickname or an empty string.
func (m *Me) NicknameValue() string {
	if m == nil || m.Nickname == nil {
		return ""
	}
	return *m.Nickname
}

// BioValue returns the bio or an empty string.
func (m *Me) BioValue() string {
	if m == nil || m.Bio == nil {
		return ""
	}
	return *m.Bio
}

// DisplayName prefers the nickname and falls back to the username.
func (m *Me) DisplayName() string {
	if m.HasNickname() {
		return *m.Nickname
	}
	if m != nil && m.Username != "" {
		return m.Username
	}
	return "user"
}

// UserList is the public users listing used as the profile fallback.
type UserList struct {
	Results []Me `json:"results"`
}
