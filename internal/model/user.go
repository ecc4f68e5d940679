package model

import "time"

// User represents a teacher or admin account.
type User struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    *string   `json:"-"`
	GoogleID        *string   `json:"-"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RegisterRequest is the payload for password registration.
// Usernames are e-mail addresses. Self-registered accounts are always teachers.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// GoogleLoginRequest carries a Google ID token issued to the frontend.
type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginResponse is returned after a successful login of either kind.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// UpdatePasswordRequest is the payload for an admin resetting a user's password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=128"`
}
