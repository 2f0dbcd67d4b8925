package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/randevu-service/internal/domain"
)

// MessageWriter интерфейс записи сообщений в брокер (реализуется *kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

const (
	// batchTimeout события пишутся по одному, ждать заполнения пачки незачем
	batchTimeout = 5 * time.Millisecond

	defaultPublishTimeout = 3 * time.Second
)

// Publisher публикует события о записях в Kafka.
// Ключ сообщения - ID записи, поэтому события одной записи попадают в одну партицию
type Publisher struct {
	writer         MessageWriter
	topic          string
	publishTimeout time.Duration
	now            func() time.Time
	logger         Logger
}

// NewKafkaPublisher создает издателя поверх kafka.Writer.
// brokers - список адресов через запятую
func NewKafkaPublisher(brokers, topic string, writeTimeout time.Duration, logger Logger) *Publisher {
	p := NewPublisher(newKafkaWriter(brokers, writeTimeout), topic, logger)
	if writeTimeout > 0 {
		p.publishTimeout = writeTimeout
	}
	return p
}

func newKafkaWriter(brokers string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(brokers)...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    1,
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
	}
}

// NewPublisher создает издателя с произвольным MessageWriter
func NewPublisher(writer MessageWriter, topic string, logger Logger) *Publisher {
	return &Publisher{
		writer:         writer,
		topic:          topic,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
		logger:         logger,
	}
}

// PublishAppointmentCreated публикует событие appointment.created
func (p *Publisher) PublishAppointmentCreated(ctx context.Context, appointment *domain.Appointment) error {
	return p.publish(ctx, TypeAppointmentCreated, appointment, nil)
}

// PublishStatusChanged публикует событие appointment.status_changed
func (p *Publisher) PublishStatusChanged(ctx context.Context, appointment *domain.Appointment, previous domain.AppointmentStatus) error {
	prev := string(previous)
	return p.publish(ctx, TypeAppointmentStatusChanged, appointment, &prev)
}

// Close закрывает соединения с брокером
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, eventType string, appointment *domain.Appointment, previous *string) error {
	event := Event{
		ID:             uuid.New(),
		Type:           eventType,
		OccurredAt:     p.now().UTC(),
		Appointment:    newPayload(appointment),
		PreviousStatus: previous,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(appointment.ID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	// Отмена запроса не отменяет запись, ожидание брокера ограничено publishTimeout
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("Publish: failed to write %s for appointment id=%s: %v", eventType, appointment.ID, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	p.logger.Info("Publish: %s for appointment id=%s", eventType, appointment.ID)
	return nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Noop издатель для конфигурации без брокера
type Noop struct{}

// PublishAppointmentCreated ничего не делает
func (Noop) PublishAppointmentCreated(context.Context, *domain.Appointment) error { return nil }

// PublishStatusChanged ничего не делает
func (Noop) PublishStatusChanged(context.Context, *domain.Appointment, domain.AppointmentStatus) error {
	return nil
}

// Close ничего не делает
func (Noop) Close() error { return nil }
