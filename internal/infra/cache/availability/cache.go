package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ErrCacheUnavailable возвращается при ошибках обращения к Redis
var ErrCacheUnavailable = errors.New("availability.cache: redis unavailable")

// Entry закешированный результат проверки доступности
type Entry struct {
	IsAvailable bool                  `json:"isAvailable"`
	Conflicts   []*domain.Reservation `json:"conflicts"`
}

// Cache cache-aside кеш результатов проверки доступности автомобилей
//
// Инвалидация через epoch: у каждого автомобиля есть счетчик версии,
// входящий в ключ записи. Инкремент счетчика при создании бронирования
// или смене статуса делает все старые записи недостижимыми, TTL
// досушивает их
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый кеш доступности
func New(addr, password string, db int, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированный результат или nil при промахе
func (c *Cache) Get(ctx context.Context, vehicleID int64, rng domain.DateRange) (*Entry, error) {
	key, err := c.entryKey(ctx, vehicleID, rng)
	if err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		// Битая запись - считаем промахом
		return nil, nil
	}

	return &entry, nil
}

// Set сохраняет результат проверки доступности
func (c *Cache) Set(ctx context.Context, vehicleID int64, rng domain.DateRange, entry *Entry) error {
	key, err := c.entryKey(ctx, vehicleID, rng)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal entry: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate сбрасывает все записи автомобиля, инкрементируя его epoch
func (c *Cache) Invalidate(ctx context.Context, vehicleID int64) error {
	if err := c.client.Incr(ctx, epochKey(vehicleID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) entryKey(ctx context.Context, vehicleID int64, rng domain.DateRange) (string, error) {
	epoch, err := c.client.Get(ctx, epochKey(vehicleID)).Int64()
	if errors.Is(err, redis.Nil) {
		epoch = 0
	} else if err != nil {
		return "", fmt.Errorf("%w: entryKey: %v", ErrCacheUnavailable, err)
	}

	return fmt.Sprintf("availability:%d:%d:%s:%s",
		vehicleID,
		epoch,
		rng.Start.UTC().Format(time.RFC3339),
		rng.End.UTC().Format(time.RFC3339),
	), nil
}

func epochKey(vehicleID int64) string {
	return fmt.Sprintf("availability:epoch:%d", vehicleID)
}
