package models

import (
	"time"

	"github.com/google/uuid"
)

// AutomatedRecipient is a point-in-time snapshot of an invoice taken when
// its owner opts into recurring reminders. It does NOT track later changes
// to the source invoice; the hourly sweep sends exactly what was captured
// here. At most one snapshot exists per invoice (checked on enroll, not
// uniquely constrained).
type AutomatedRecipient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID      uuid.UUID `gorm:"type:uuid;index" json:"invoiceId"`
	RecipientName  string    `json:"recipientName"`
	RecipientEmail string    `json:"recipientEmail"`
	Amount         float64   `json:"amount"`
	DueDate        time.Time `json:"dueDate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
