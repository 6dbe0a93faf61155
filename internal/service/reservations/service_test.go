package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeRepo хранит бронирования в памяти и воспроизводит оптимистичную
// проверку статуса настоящего репозитория
type fakeRepo struct {
	byID map[int64]*domain.Reservation

	// при true UpdateStatus симулирует проигрыш гонки
	staleOnUpdate bool
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	r := &fakeRepo{byID: make(map[int64]*domain.Reservation)}
	for _, res := range reservations {
		r.byID[res.ID] = res
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.byID {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAll(_ context.Context) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.byID {
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.ReservationStatus) (*domain.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	if r.staleOnUpdate || res.Status != from {
		return nil, reservationRepo.ErrStaleStatus
	}
	res.Status = to
	copied := *res
	return &copied, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner    = domain.Actor{ID: 7, Role: domain.RoleUser}
	admin    = domain.Actor{ID: 1, Role: domain.RoleAdmin}
	stranger = domain.Actor{ID: 99, Role: domain.RoleUser}
)

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         10,
		VehicleID:  3,
		UserID:     owner.ID,
		StartDate:  date(2024, 6, 1),
		EndDate:    date(2024, 6, 3),
		TotalPrice: 2000,
		Status:     domain.StatusPending,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner reads own reservation", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 10, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	})

	t.Run("admin reads any reservation", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.GetByID(context.Background(), 10, admin)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.GetByID(context.Background(), 10, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil, nil, nopLogger{})

		_, err := svc.GetByID(context.Background(), 10, admin)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_GetAllReservations(t *testing.T) {
	svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.GetAllReservations(context.Background(), owner)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin gets the list", func(t *testing.T) {
		resp, err := svc.GetAllReservations(context.Background(), admin)
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("admin approves pending", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "approved"}, admin)

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("owner cancels pending", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "cancelled"}, owner)

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("owner cannot approve", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "approved"}, owner)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "cancelled"}, stranger)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal reservation rejects transition", func(t *testing.T) {
		res := pendingReservation()
		res.Status = domain.StatusCompleted
		svc := NewService(newFakeRepo(res), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "cancelled"}, owner)

		assert.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("transition outside table", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "completed"}, admin)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status value", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "archived"}, admin)

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("lost optimistic race maps to status conflict", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		repo.staleOnUpdate = true
		svc := NewService(repo, nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "approved"}, admin)

		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nil, nil, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "approved"}, admin)

		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
