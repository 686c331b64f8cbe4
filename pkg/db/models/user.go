package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated identity that owns orders. Account management
// lives in the identity service; this row only anchors ownership.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
