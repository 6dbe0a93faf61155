package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (r *fakeReservationRepo) GetByVehicleAndStatuses(_ context.Context, vehicleID int64, statuses []domain.ReservationStatus, overlapping *domain.DateRange) ([]*domain.Reservation, error) {
	statusSet := make(map[domain.ReservationStatus]struct{}, len(statuses))
	for _, s := range statuses {
		statusSet[s] = struct{}{}
	}

	var out []*domain.Reservation
	for _, res := range r.reservations {
		if res.VehicleID != vehicleID {
			continue
		}
		if _, ok := statusSet[res.Status]; !ok {
			continue
		}
		if overlapping != nil && !overlapping.Overlaps(res.Range()) {
			continue
		}
		out = append(out, res)
	}

	return out, nil
}

type fakeVehicleRepo struct {
	vehicle *domain.Vehicle
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	if r.vehicle == nil || r.vehicle.ID != id {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	v := *r.vehicle
	return &v, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{ID: 1, Brand: "Kia", Model: "Rio", DayRate: 900, IsAvailable: true}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("free period is available", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: testVehicle()}, nil, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 5),
		})

		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("approved reservation blocks the period", func(t *testing.T) {
		resRepo := &fakeReservationRepo{reservations: []*domain.Reservation{
			{ID: 10, VehicleID: 1, Status: domain.StatusApproved,
				StartDate: date(2024, 6, 3), EndDate: date(2024, 6, 7)},
		}}
		uc := NewUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()}, nil, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 5),
		})

		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, int64(10), resp.Conflicts[0].ReservationID)
	})

	t.Run("pending reservation does not block availability", func(t *testing.T) {
		resRepo := &fakeReservationRepo{reservations: []*domain.Reservation{
			{ID: 11, VehicleID: 1, Status: domain.StatusPending,
				StartDate: date(2024, 6, 3), EndDate: date(2024, 6, 7)},
		}}
		uc := NewUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()}, nil, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 5),
		})

		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("manually unavailable vehicle", func(t *testing.T) {
		vehicle := testVehicle()
		vehicle.IsAvailable = false
		uc := NewUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: vehicle}, nil, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 5),
		})

		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{}, nil, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			VehicleID: 42,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 5),
		})

		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("invalid dates", func(t *testing.T) {
		uc := NewUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: testVehicle()}, nil, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			VehicleID: 1,
			StartDate: date(2024, 6, 5),
			EndDate:   date(2024, 6, 1),
		})

		assert.ErrorIs(t, err, ErrInvalidDates)
	})
}
