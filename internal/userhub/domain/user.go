package domain

import "time"

type User struct {
	ID           string
	FullName     string
	Email        string // stored lowercased and trimmed
	PasswordHash string // argon2id encoded, never serialized
	Role         Role
	Status       Status
	LastLoginAt  *time.Time // nil before first login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the externally visible projection of a User. The password
// hash has no representation here at all.
type PublicUser struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Public strips the credential material from a User for API responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// IsActive reports whether the account may be used at request time.
func (u User) IsActive() bool { return u.Status == StatusActive }
