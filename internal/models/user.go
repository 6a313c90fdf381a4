package models

import (
	"time"

	"github.com/google/uuid"
)

// User is created on first successful Google login and never deleted.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleID  string    `gorm:"uniqueIndex" json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Invoices  []Invoice `gorm:"foreignKey:CreatorID" json:"invoices,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
