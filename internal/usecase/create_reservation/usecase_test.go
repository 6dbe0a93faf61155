package create_reservation

import (
	"context"
	"sync"
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

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

// fakeReservationRepo хранит бронирования в памяти
type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (r *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *res
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.reservations = append(r.reservations, &stored)

	return &stored, nil
}

func (r *fakeReservationRepo) GetByVehicleAndStatuses(_ context.Context, vehicleID int64, statuses []domain.ReservationStatus, overlapping *domain.DateRange) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

// fakeTxManager сериализует транзакции мьютексом, как это делает
// блокировка строки автомобиля в настоящей БД
type fakeTxManager struct{ mu sync.Mutex }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(resRepo *fakeReservationRepo, vehRepo *fakeVehicleRepo) *UseCase {
	uc := NewUseCase(resRepo, vehRepo, &fakeTxManager{}, nil, nil, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: date(2024, 5, 1)}
	return uc
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          1,
		Brand:       "Toyota",
		Model:       "Corolla",
		DayRate:     1000,
		IsAvailable: true,
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("creates pending reservation with computed price", func(t *testing.T) {
		resRepo := &fakeReservationRepo{}
		uc := newTestUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()})

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:    7,
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Days)
		assert.Equal(t, 2000.0, resp.TotalPrice)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.NotZero(t, resp.ID)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{})

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    7,
			VehicleID: 42,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 3),
		})

		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("vehicle manually unavailable", func(t *testing.T) {
		vehicle := testVehicle()
		vehicle.IsAvailable = false
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: vehicle})

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    7,
			VehicleID: 1,
			StartDate: date(2024, 6, 1),
			EndDate:   date(2024, 6, 3),
		})

		assert.ErrorIs(t, err, ErrVehicleUnavailable)
	})

	t.Run("invalid date range", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: testVehicle()})

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    7,
			VehicleID: 1,
			StartDate: date(2024, 6, 3),
			EndDate:   date(2024, 6, 1),
		})

		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("start date in past", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeVehicleRepo{vehicle: testVehicle()})

		_, err := uc.Execute(context.Background(), &Request{
			UserID:    7,
			VehicleID: 1,
			StartDate: date(2024, 4, 1),
			EndDate:   date(2024, 6, 1),
		})

		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("pending reservation blocks overlapping dates", func(t *testing.T) {
		resRepo := &fakeReservationRepo{}
		uc := newTestUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()})

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 7, VehicleID: 1,
			StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5),
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			UserID: 8, VehicleID: 1,
			StartDate: date(2024, 6, 4), EndDate: date(2024, 6, 8),
		})
		assert.ErrorIs(t, err, ErrDatesConflict)
	})

	t.Run("shared boundary day conflicts", func(t *testing.T) {
		resRepo := &fakeReservationRepo{}
		uc := newTestUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()})

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 7, VehicleID: 1,
			StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 3),
		})
		require.NoError(t, err)

		// Начало в день окончания существующего бронирования - конфликт
		_, err = uc.Execute(context.Background(), &Request{
			UserID: 8, VehicleID: 1,
			StartDate: date(2024, 6, 3), EndDate: date(2024, 6, 5),
		})
		assert.ErrorIs(t, err, ErrDatesConflict)

		// Начало на следующий день - свободно
		_, err = uc.Execute(context.Background(), &Request{
			UserID: 9, VehicleID: 1,
			StartDate: date(2024, 6, 4), EndDate: date(2024, 6, 6),
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled reservation does not block", func(t *testing.T) {
		resRepo := &fakeReservationRepo{}
		resRepo.reservations = append(resRepo.reservations, &domain.Reservation{
			ID: 100, VehicleID: 1, UserID: 5,
			StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 10),
			Status: domain.StatusCancelled,
		})
		uc := newTestUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()})

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 7, VehicleID: 1,
			StartDate: date(2024, 6, 2), EndDate: date(2024, 6, 5),
		})
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_ConcurrentRequests(t *testing.T) {
	const workers = 10

	resRepo := &fakeReservationRepo{}
	uc := newTestUseCase(resRepo, &fakeVehicleRepo{vehicle: testVehicle()})

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID: userID, VehicleID: 1,
				StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5),
			})
			results <- err
		}(int64(i + 1))
	}

	wg.Wait()
	close(results)

	succeeded := 0
	conflicted := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDatesConflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent request must win")
	assert.Equal(t, workers-1, conflicted)
}
