package models

import "time"

const (
	StatusDue     = "Due"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

// DeriveStatus applies the invoice status rule at every store boundary.
// Paid is sticky and never overwritten; otherwise an invoice is Overdue
// once its due date has passed, else Due.
func DeriveStatus(current string, dueDate, now time.Time) string {
	if current == StatusPaid {
		return StatusPaid
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusDue
}
