package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		current string
		dueDate time.Time
		want    string
	}{
		{"due stays due before deadline", StatusDue, future, StatusDue},
		{"due becomes overdue after deadline", StatusDue, past, StatusOverdue},
		{"overdue reverts to due when extended", StatusOverdue, future, StatusDue},
		{"overdue stays overdue", StatusOverdue, past, StatusOverdue},
		{"paid is sticky with past due date", StatusPaid, past, StatusPaid},
		{"paid is sticky with future due date", StatusPaid, future, StatusPaid},
		{"empty status with future due date", "", future, StatusDue},
		{"due date equal to now is not overdue", StatusDue, now, StatusDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.current, tt.dueDate, now))
		})
	}
}
