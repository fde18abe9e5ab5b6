package models

import (
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/timex"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Account is an authentication record stored in the accounts collection.
// PasswordHash holds an encoded argon2id hash.
type Account struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"password"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin"`
}

// AccountView is an Account without credentials, safe to hand to callers.
type AccountView struct {
	ID        int
	Username  string
	Email     string
	Role      Role
	CreatedAt time.Time
	LastLogin *time.Time
}

func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

func (a AccountView) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Session is the record kept in either session scope.
type Session struct {
	UserID    int          `json:"userId"`
	Token     string       `json:"token"`
	ExpiresAt timex.Millis `json:"expiresAt"`
}

// FailedAttempts counts consecutive login failures of one client identifier.
type FailedAttempts struct {
	Count       int          `json:"count"`
	LastAttempt timex.Millis `json:"lastAttempt"`
}
