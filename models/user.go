package models

import "github.com/uptrace/bun"

// User is an application user with a bcrypt-hashed password.
// Users are created at registration and never updated or deleted.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int    `bun:"id,pk,autoincrement" json:"id"`
	Username     string `bun:"username,notnull,unique" json:"username"`
	PasswordHash string `bun:"password_hash,notnull" json:"-"`
}
