package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

var ratingColumns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"score",
	"comment",
	"is_verified_rental",
	"created_at",
}

// Repository репозиторий для работы с оценками автомобилей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория оценок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую оценку
// Уникальность пары (user_id, vehicle_id) обеспечивается индексом в БД
func (r *Repository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ratings").
		Columns(
			"user_id",
			"vehicle_id",
			"score",
			"comment",
			"is_verified_rental",
		).
		Values(
			rating.UserID,
			rating.VehicleID,
			rating.Score,
			rating.Comment,
			rating.IsVerifiedRental,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrAlreadyRated
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rating.CreatedAt = createdAt.Time

	return rating, nil
}

// GetByID получает оценку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ratingColumns...).
		From("ratings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	rating, err := scanRating(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rating: %v", ErrScanRow, err)
	}

	return rating, nil
}

// GetByVehicleID получает все оценки автомобиля (сначала новые)
// Внутри транзакции добавляет FOR UPDATE; сериализацию пересчета агрегата
// обеспечивает блокировка строки автомобиля, взятая сервисом первым шагом
func (r *Repository) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ratingColumns...).
		From("ratings").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("created_at DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRatings(rows)
}

// Delete удаляет оценку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("ratings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRatingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRating(row rowScanner) (*domain.Rating, error) {
	var rating domain.Rating
	var createdAt sql.NullTime

	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&rating.VehicleID,
		&rating.Score,
		&rating.Comment,
		&rating.IsVerifiedRental,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rating.CreatedAt = createdAt.Time

	return &rating, nil
}

func scanRatings(rows *sql.Rows) ([]*domain.Rating, error) {
	ratings := make([]*domain.Rating, 0)

	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRatings - scan row: %v", ErrScanRow, err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRatings - rows error: %v", ErrScanRow, err)
	}

	return ratings, nil
}
