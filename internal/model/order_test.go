package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPending, OrderStatusAssigned, false},
		{OrderStatusConfirmed, OrderStatusAssigned, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusInProgress, false},
		{OrderStatusAssigned, OrderStatusInProgress, true},
		{OrderStatusAssigned, OrderStatusCancelled, true},
		{OrderStatusAssigned, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusInProgress.IsTerminal())

	assert.Empty(t, OrderStatusCompleted.NextStatuses())
	assert.Len(t, OrderStatusPending.NextStatuses(), 2)
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("DELIVERED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestTicketStatusTransitions(t *testing.T) {
	assert.True(t, TicketStatusOpen.CanTransition(TicketStatusInProgress))
	assert.True(t, TicketStatusInProgress.CanTransition(TicketStatusResolved))
	assert.True(t, TicketStatusResolved.CanTransition(TicketStatusOpen), "tickets can be reopened")
	assert.True(t, TicketStatusClosed.CanTransition(TicketStatusInProgress))
	assert.False(t, TicketStatusClosed.CanTransition(TicketStatusResolved))
	assert.False(t, TicketStatusOpen.CanTransition(TicketStatusOpen))

	assert.True(t, TicketStatusResolved.IsClosedLike())
	assert.True(t, TicketStatusClosed.IsClosedLike())
	assert.False(t, TicketStatusOpen.IsClosedLike())
	assert.False(t, TicketStatus("ARCHIVED").Valid())
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(90, 180))
	assert.True(t, ValidCoordinate(-90, -180))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(-91, 0))
	assert.False(t, ValidCoordinate(0, 181))
	assert.False(t, ValidCoordinate(0, -181))
}
