package model

import "time"

// User is a back-office operator. Password holds the bcrypt hash.
type User struct {
	UserID   int    `db:"user_id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

// Session records an issued token for auditing; the worker prunes expired
// rows.
type Session struct {
	SessionID string    `db:"session_id"`
	UserID    int       `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
