package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Типы событий жизненного цикла бронирования
const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent событие жизненного цикла бронирования
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservationId"`
	VehicleID     int64     `json:"vehicleId"`
	UserID        int64     `json:"userId"`
	Status        string    `json:"status"`
	PrevStatus    *string   `json:"prevStatus,omitempty"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	TotalPrice    float64   `json:"totalPrice"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher публикует события бронирований в Kafka
// Потребители: рассылка уведомлений, аналитика
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher создает новый publisher событий
func NewPublisher(brokers []string, topic string) *Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w}
}

// ReservationCreated публикует событие создания бронирования
func (p *Publisher) ReservationCreated(ctx context.Context, res *domain.Reservation) error {
	return p.publish(ctx, ReservationEvent{
		Type:          TypeReservationCreated,
		ReservationID: res.ID,
		VehicleID:     res.VehicleID,
		UserID:        res.UserID,
		Status:        string(res.Status),
		StartDate:     res.StartDate.Format(domain.DateFormat),
		EndDate:       res.EndDate.Format(domain.DateFormat),
		TotalPrice:    res.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	})
}

// ReservationStatusChanged публикует событие смены статуса бронирования
func (p *Publisher) ReservationStatusChanged(ctx context.Context, res *domain.Reservation, prev domain.ReservationStatus) error {
	prevStr := string(prev)
	return p.publish(ctx, ReservationEvent{
		Type:          TypeReservationStatusChanged,
		ReservationID: res.ID,
		VehicleID:     res.VehicleID,
		UserID:        res.UserID,
		Status:        string(res.Status),
		PrevStatus:    &prevStr,
		StartDate:     res.StartDate.Format(domain.DateFormat),
		EndDate:       res.EndDate.Format(domain.DateFormat),
		TotalPrice:    res.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	})
}

// Close закрывает writer
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, event ReservationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", event.ReservationID)),
		Value: payload,
	})
}
