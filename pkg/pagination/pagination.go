// Package pagination implements the keyset cursor used by the order list
// endpoint. A token encodes the (created_at, id) position of the last row
// already served, so pages stay stable while new orders are written.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit applies when the caller does not ask for a page size.
	DefaultLimit = 25
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Params carries the raw pagination inputs taken from the query string.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the keyset position of the last row on the previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// cursorToken is the wire shape of an encoded cursor.
type cursorToken struct {
	CreatedAt string `json:"t"`
	ID        string `json:"id"`
}

// NormalizeLimit clamps a requested page size into [1, MaxLimit], falling
// back to DefaultLimit for zero or negative values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer adds one row on top of the normalized limit so the query
// can tell whether another page exists without a second round trip.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes a keyset position into an opaque URL-safe token.
func EncodeCursor(c Cursor) string {
	payload, err := json.Marshal(cursorToken{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID.String(),
	})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(payload)
}

// ParseCursor decodes a token produced by EncodeCursor. A blank value means
// the first page and yields a nil cursor.
func ParseCursor(raw string) (*Cursor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	var token cursorToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(token.ID)
	if err != nil {
		return nil, fmt.Errorf("cursor id: %w", err)
	}

	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
