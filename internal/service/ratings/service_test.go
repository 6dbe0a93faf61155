package ratings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	ratingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rating"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type fakeRatingRepo struct {
	nextID  int64
	ratings map[int64]*domain.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[int64]*domain.Rating)}
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	for _, existing := range r.ratings {
		if existing.UserID == rating.UserID && existing.VehicleID == rating.VehicleID {
			return nil, ratingRepo.ErrAlreadyRated
		}
	}
	r.nextID++
	stored := *rating
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.ratings[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeRatingRepo) GetByID(_ context.Context, id int64) (*domain.Rating, error) {
	rating, ok := r.ratings[id]
	if !ok {
		return nil, ratingRepo.ErrRatingNotFound
	}
	copied := *rating
	return &copied, nil
}

func (r *fakeRatingRepo) GetByVehicleID(_ context.Context, vehicleID int64) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rating := range r.ratings {
		if rating.VehicleID == vehicleID {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.ratings[id]; !ok {
		return ratingRepo.ErrRatingNotFound
	}
	delete(r.ratings, id)
	return nil
}

type fakeVehicleRepo struct {
	vehicle   *domain.Vehicle
	aggregate domain.RatingAggregate
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	if r.vehicle == nil || r.vehicle.ID != id {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	v := *r.vehicle
	return &v, nil
}

func (r *fakeVehicleRepo) UpdateRating(_ context.Context, _ int64, aggregate domain.RatingAggregate) error {
	r.aggregate = aggregate
	return nil
}

type fakeReservationRepo struct {
	completed bool
}

func (r *fakeReservationRepo) HasCompletedReservation(_ context.Context, _, _ int64) (bool, error) {
	return r.completed, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(ratings *fakeRatingRepo, vehicles *fakeVehicleRepo, reservations *fakeReservationRepo) *Service {
	return NewService(ratings, vehicles, reservations, passthroughTxManager{}, nopLogger{})
}

var user = domain.Actor{ID: 7, Role: domain.RoleUser}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{ID: 1, Brand: "Skoda", Model: "Octavia", DayRate: 1200, IsAvailable: true}
}

func TestService_Create(t *testing.T) {
	t.Run("creates rating and recomputes aggregate", func(t *testing.T) {
		ratings := newFakeRatingRepo()
		vehicles := &fakeVehicleRepo{vehicle: testVehicle()}
		svc := newTestService(ratings, vehicles, &fakeReservationRepo{})

		resp, err := svc.Create(context.Background(), 1,
			&models.CreateRatingRequest{Score: 4, Comment: ptr.Ptr("solid car")}, user)

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Score)
		require.NotNil(t, resp.Comment)
		assert.Equal(t, "solid car", *resp.Comment)
		assert.False(t, resp.IsVerifiedRental)
		assert.Equal(t, 4.0, vehicles.aggregate.Average)
		assert.Equal(t, 1, vehicles.aggregate.Count)
	})

	t.Run("verified flag set after completed rental", func(t *testing.T) {
		svc := newTestService(newFakeRatingRepo(), &fakeVehicleRepo{vehicle: testVehicle()},
			&fakeReservationRepo{completed: true})

		resp, err := svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 5}, user)

		require.NoError(t, err)
		assert.True(t, resp.IsVerifiedRental)
	})

	t.Run("duplicate rating rejected", func(t *testing.T) {
		ratings := newFakeRatingRepo()
		svc := newTestService(ratings, &fakeVehicleRepo{vehicle: testVehicle()}, &fakeReservationRepo{})

		_, err := svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 4}, user)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 5}, user)
		assert.ErrorIs(t, err, ErrAlreadyRated)
	})

	t.Run("score out of range", func(t *testing.T) {
		svc := newTestService(newFakeRatingRepo(), &fakeVehicleRepo{vehicle: testVehicle()}, &fakeReservationRepo{})

		_, err := svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 6}, user)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		svc := newTestService(newFakeRatingRepo(), &fakeVehicleRepo{}, &fakeReservationRepo{})

		_, err := svc.Create(context.Background(), 42, &models.CreateRatingRequest{Score: 4}, user)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}
	stranger := domain.Actor{ID: 55, Role: domain.RoleUser}

	setup := func(t *testing.T) (*Service, *fakeVehicleRepo, int64) {
		t.Helper()
		ratings := newFakeRatingRepo()
		vehicles := &fakeVehicleRepo{vehicle: testVehicle()}
		svc := newTestService(ratings, vehicles, &fakeReservationRepo{})

		resp, err := svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 4}, user)
		require.NoError(t, err)
		return svc, vehicles, resp.ID
	}

	t.Run("author deletes own rating and aggregate resets", func(t *testing.T) {
		svc, vehicles, ratingID := setup(t)

		require.NoError(t, svc.Delete(context.Background(), ratingID, user))
		assert.Equal(t, 0, vehicles.aggregate.Count)
		assert.Equal(t, 0.0, vehicles.aggregate.Average)
	})

	t.Run("admin deletes any rating", func(t *testing.T) {
		svc, _, ratingID := setup(t)
		assert.NoError(t, svc.Delete(context.Background(), ratingID, admin))
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc, _, ratingID := setup(t)
		assert.ErrorIs(t, svc.Delete(context.Background(), ratingID, stranger), ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := setup(t)
		assert.ErrorIs(t, svc.Delete(context.Background(), 999, user), ErrRatingNotFound)
	})
}

func TestService_ListByVehicle(t *testing.T) {
	ratings := newFakeRatingRepo()
	vehicles := &fakeVehicleRepo{vehicle: testVehicle()}
	svc := newTestService(ratings, vehicles, &fakeReservationRepo{})

	_, err := svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 5}, user)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, &models.CreateRatingRequest{Score: 3},
		domain.Actor{ID: 8, Role: domain.RoleUser})
	require.NoError(t, err)

	resp, err := svc.ListByVehicle(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Ratings, 2)
	assert.Equal(t, 4.0, resp.Summary.Average)
	assert.Equal(t, 2, resp.Summary.Count)

	t.Run("vehicle not found", func(t *testing.T) {
		_, err := svc.ListByVehicle(context.Background(), 42)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})
}

// ratingStore моделирует видимость на уровне снимков: вставка видна другим
// транзакциям только после коммита, блокировка строки автомобиля
// удерживается до конца транзакции
type ratingStore struct {
	vehicleMu sync.Mutex

	mu        sync.Mutex
	nextID    int64
	committed []*domain.Rating
	aggregate domain.RatingAggregate
}

type txStateKey struct{}

type txState struct {
	staged []*domain.Rating
	locked bool
}

func txStateFrom(ctx context.Context) *txState {
	st, _ := ctx.Value(txStateKey{}).(*txState)
	return st
}

type snapshotTxManager struct {
	store *ratingStore
}

func (m snapshotTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	st := &txState{}
	err := fn(context.WithValue(ctx, txStateKey{}, st))
	if err == nil {
		m.store.mu.Lock()
		m.store.committed = append(m.store.committed, st.staged...)
		m.store.mu.Unlock()
	}
	if st.locked {
		m.store.vehicleMu.Unlock()
	}
	return err
}

type lockingVehicleRepo struct {
	store   *ratingStore
	vehicle *domain.Vehicle
}

func (r *lockingVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	if st := txStateFrom(ctx); st != nil && !st.locked {
		r.store.vehicleMu.Lock()
		st.locked = true
	}
	if r.vehicle == nil || r.vehicle.ID != id {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	v := *r.vehicle
	return &v, nil
}

func (r *lockingVehicleRepo) UpdateRating(_ context.Context, _ int64, aggregate domain.RatingAggregate) error {
	r.store.mu.Lock()
	r.store.aggregate = aggregate
	r.store.mu.Unlock()
	return nil
}

type snapshotRatingRepo struct {
	store *ratingStore
}

func (r *snapshotRatingRepo) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.store.mu.Lock()
	r.store.nextID++
	stored := *rating
	stored.ID = r.store.nextID
	stored.CreatedAt = time.Now()
	r.store.mu.Unlock()

	st := txStateFrom(ctx)
	st.staged = append(st.staged, &stored)
	copied := stored
	return &copied, nil
}

func (r *snapshotRatingRepo) GetByID(_ context.Context, id int64) (*domain.Rating, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rating := range r.store.committed {
		if rating.ID == id {
			copied := *rating
			return &copied, nil
		}
	}
	return nil, ratingRepo.ErrRatingNotFound
}

func (r *snapshotRatingRepo) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Rating, error) {
	var out []*domain.Rating

	r.store.mu.Lock()
	for _, rating := range r.store.committed {
		if rating.VehicleID == vehicleID {
			out = append(out, rating)
		}
	}
	r.store.mu.Unlock()

	if st := txStateFrom(ctx); st != nil {
		for _, rating := range st.staged {
			if rating.VehicleID == vehicleID {
				out = append(out, rating)
			}
		}
	}

	return out, nil
}

func (r *snapshotRatingRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, rating := range r.store.committed {
		if rating.ID == id {
			r.store.committed = append(r.store.committed[:i], r.store.committed[i+1:]...)
			return nil
		}
	}
	return ratingRepo.ErrRatingNotFound
}

func TestService_Create_ConcurrentRecompute(t *testing.T) {
	store := &ratingStore{}
	svc := NewService(
		&snapshotRatingRepo{store: store},
		&lockingVehicleRepo{store: store, vehicle: testVehicle()},
		&fakeReservationRepo{},
		snapshotTxManager{store: store},
		nopLogger{},
	)

	scores := []int{5, 3}
	errCh := make(chan error, len(scores))

	var wg sync.WaitGroup
	for i, score := range scores {
		wg.Add(1)
		go func(userID int64, score int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), 1,
				&models.CreateRatingRequest{Score: score},
				domain.Actor{ID: userID, Role: domain.RoleUser})
			errCh <- err
		}(int64(100+i), score)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	// Агрегат посчитан по полному набору из обеих транзакций
	assert.Equal(t, 2, store.aggregate.Count)
	assert.Equal(t, 4.0, store.aggregate.Average)
	assert.Len(t, store.committed, 2)
}
