package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"created to awaiting payment", StatusCreated, StatusAwaitingPayment, true},
		{"created straight to paid", StatusCreated, StatusPaid, true},
		{"awaiting payment to paid", StatusAwaitingPayment, StatusPaid, true},
		{"paid to shipped", StatusPaid, StatusShipped, true},
		{"repay while paid", StatusPaid, StatusPaid, true},
		{"ship before payment", StatusCreated, StatusShipped, false},
		{"ship while awaiting payment", StatusAwaitingPayment, StatusShipped, false},
		{"shipped is terminal", StatusShipped, StatusPaid, false},
		{"no going back", StatusPaid, StatusCreated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
