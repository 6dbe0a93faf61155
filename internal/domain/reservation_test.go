package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to ReservationStatus
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusCompleted},
	}

	for _, tt := range allowed {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.True(t, CanTransition(tt.from, tt.to))
		})
	}

	forbidden := []struct {
		from, to ReservationStatus
	}{
		{StatusPending, StatusCompleted},
		{StatusApproved, StatusApproved},
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
	}

	for _, tt := range forbidden {
		t.Run(string(tt.from)+"_to_"+string(tt.to)+"_forbidden", func(t *testing.T) {
			assert.False(t, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservation_ValidateTransition(t *testing.T) {
	owner := Actor{ID: 7, Role: RoleUser}
	admin := Actor{ID: 1, Role: RoleAdmin}
	stranger := Actor{ID: 99, Role: RoleUser}

	t.Run("admin approves pending", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.NoError(t, res.ValidateTransition(StatusApproved, admin))
	})

	t.Run("admin rejects pending", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.NoError(t, res.ValidateTransition(StatusRejected, admin))
	})

	t.Run("admin completes approved", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusApproved}
		assert.NoError(t, res.ValidateTransition(StatusCompleted, admin))
	})

	t.Run("owner cancels pending", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.NoError(t, res.ValidateTransition(StatusCancelled, owner))
	})

	t.Run("owner cancels approved", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusApproved}
		assert.NoError(t, res.ValidateTransition(StatusCancelled, owner))
	})

	t.Run("owner cannot approve own reservation", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.ErrorIs(t, res.ValidateTransition(StatusApproved, owner), ErrForbidden)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.ErrorIs(t, res.ValidateTransition(StatusCancelled, stranger), ErrForbidden)
	})

	t.Run("terminal reservation rejects any transition", func(t *testing.T) {
		for _, status := range TerminalStatuses {
			res := &Reservation{UserID: owner.ID, Status: status}
			assert.ErrorIs(t, res.ValidateTransition(StatusApproved, admin), ErrTerminalState)
		}
	})

	t.Run("owner cancel of terminal reservation reports terminal state", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusCompleted}
		assert.ErrorIs(t, res.ValidateTransition(StatusCancelled, owner), ErrTerminalState)
	})

	t.Run("unknown status", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.ErrorIs(t, res.ValidateTransition("archived", admin), ErrInvalidStatus)
	})

	t.Run("transition outside table", func(t *testing.T) {
		res := &Reservation{UserID: owner.ID, Status: StatusPending}
		assert.ErrorIs(t, res.ValidateTransition(StatusCompleted, admin), ErrInvalidTransition)
	})
}

func TestReservation_IsBlocking(t *testing.T) {
	blocking := map[ReservationStatus]bool{
		StatusPending:   true,
		StatusApproved:  true,
		StatusRejected:  false,
		StatusCompleted: false,
		StatusCancelled: false,
	}

	for status, expected := range blocking {
		res := &Reservation{Status: status}
		assert.Equal(t, expected, res.IsBlocking(), "status %s", status)
	}
}
