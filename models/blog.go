package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Blog is a single post. The id is a UUID string generated server-side,
// one per insert. Author is always the username of the creator and never
// changes after creation; only title and content are mutable.
type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:b"`

	ID        string    `bun:"id,pk" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Content   string    `bun:"content,notnull" json:"content"`
	Author    string    `bun:"author,notnull" json:"author"`
	Timestamp time.Time `bun:"timestamp,notnull" json:"timestamp"`
}
