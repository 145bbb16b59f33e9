package model

import (
	"time"
)

type AdminAccount struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	SessionToken *string    `db:"session_token" json:"-"`
	TokenExpiry  *time.Time `db:"token_expiry" json:"-"`
}

type CreateAdminParams struct {
	Username     string
	PasswordHash string
}
