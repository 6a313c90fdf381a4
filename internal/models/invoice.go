package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipient is the billed party stored inline on the invoice.
type Recipient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Invoice numbers are unique per creator, not globally.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_creator_invoice_number" json:"creator"`
	InvoiceNumber int       `gorm:"uniqueIndex:idx_creator_invoice_number" json:"invoiceNumber"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"dueDate"`
	Status        string    `gorm:"index" json:"status"`
	Recipient     Recipient `gorm:"embedded;embeddedPrefix:recipient_" json:"recipient"`
	CreatedAt     time.Time `json:"createdAt"`
}
