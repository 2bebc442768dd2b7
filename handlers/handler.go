package handlers

import (
	"time"

	"github.com/uptrace/bun"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db         *bun.DB
	jwtKey     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// New creates a Handler with the given database connection, JWT signing key,
// token lifetime and bcrypt work factor.
func New(db *bun.DB, jwtKey []byte, tokenTTL time.Duration, bcryptCost int) *Handler {
	return &Handler{db: db, jwtKey: jwtKey, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}
