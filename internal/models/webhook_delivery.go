package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookDelivery records one webhook send attempt, manual or scheduled.
type WebhookDelivery struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index"`
	Kind      string    // "trigger" or "sweep"
	Payload   datatypes.JSON
	Success   bool
	Error     string
	CreatedAt time.Time
}
