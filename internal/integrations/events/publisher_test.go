package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/randevu-service/internal/domain"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
	ctx      context.Context
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.ctx = ctx
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		ServiceID:       uuid.New(),
		StaffID:         uuid.New(),
		CustomerName:    "Ayşe Yılmaz",
		CustomerEmail:   "ayse@example.com",
		Date:            time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Time:            "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}
}

func TestPublisher_PublishAppointmentCreated(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewPublisher(writer, "appointments", nopLogger{})
	publisher.now = func() time.Time { return time.Date(2024, time.January, 14, 9, 0, 0, 0, time.UTC) }

	appointment := testAppointment()
	require.NoError(t, publisher.PublishAppointmentCreated(context.Background(), appointment))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "appointments", msg.Topic)
	assert.Equal(t, appointment.ID.String(), string(msg.Key))
	assert.Contains(t, msg.Headers, kafka.Header{Key: "event_type", Value: []byte(TypeAppointmentCreated)})

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, TypeAppointmentCreated, event.Type)
	assert.Equal(t, "2024-01-15", event.Appointment.Date)
	assert.Equal(t, "10:00", event.Appointment.Time)
	assert.Nil(t, event.PreviousStatus)
}

func TestPublisher_PublishStatusChanged(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewPublisher(writer, "appointments", nopLogger{})

	appointment := testAppointment()
	appointment.Status = domain.StatusCancelled
	require.NoError(t, publisher.PublishStatusChanged(context.Background(), appointment, domain.StatusConfirmed))

	var event Event
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &event))
	assert.Equal(t, TypeAppointmentStatusChanged, event.Type)
	assert.Equal(t, "cancelled", event.Appointment.Status)
	require.NotNil(t, event.PreviousStatus)
	assert.Equal(t, "confirmed", *event.PreviousStatus)
}

func TestPublisher_WriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	publisher := NewPublisher(writer, "appointments", nopLogger{})

	err := publisher.PublishAppointmentCreated(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, splitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, splitBrokers(""))
}

func TestPublisher_WriteContext(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewPublisher(writer, "appointments", nopLogger{})
	publisher.publishTimeout = 200 * time.Millisecond

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	require.NoError(t, publisher.PublishAppointmentCreated(reqCtx, testAppointment()))
	require.NotNil(t, writer.ctx)

	deadline, ok := writer.ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, start.Add(200*time.Millisecond), deadline, 100*time.Millisecond)
	assert.NoError(t, writer.ctx.Err(), "cancelled request must not cancel the write")
}

func TestNewKafkaWriter_FlushesSingleMessages(t *testing.T) {
	writer := newKafkaWriter("kafka-1:9092,kafka-2:9092", 5*time.Second)

	assert.Equal(t, 1, writer.BatchSize)
	assert.LessOrEqual(t, writer.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, 5*time.Second, writer.WriteTimeout)
	assert.Equal(t, kafka.TCP("kafka-1:9092", "kafka-2:9092"), writer.Addr)
}

func TestNewKafkaPublisher_UsesWriteTimeout(t *testing.T) {
	publisher := NewKafkaPublisher("localhost:9092", "appointments", 2*time.Second, nopLogger{})
	defer publisher.Close()

	assert.Equal(t, 2*time.Second, publisher.publishTimeout)
}
