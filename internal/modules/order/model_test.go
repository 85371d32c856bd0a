package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPacked, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusPacked, StatusShipped, true},
		{StatusPacked, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusReturned, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusFinished, true},
		{StatusDelivered, StatusReturned, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusFinished, StatusReturned, false},
		{StatusReturned, StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusCancelled, StatusFinished, StatusReturned} {
		assert.Empty(t, validTransitions[terminal], "%s should be terminal", terminal)
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Status("pending").Known())
	assert.True(t, Status("returned").Known())
	assert.False(t, Status("archived").Known())
	assert.False(t, Status("").Known())
}
