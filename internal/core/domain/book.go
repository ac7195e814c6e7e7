package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrBookUnavailable = errors.New("book not available")

// Book is a catalog entry. Available is derived state: false exactly
// while an approved loan references the book. It is mutated only by the
// loan lifecycle, never set directly by a client.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}
