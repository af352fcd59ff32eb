package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), BookingCreated, BookingCreatedEvent{BookingID: "b1"}))

	got := r.Events()
	require.Len(t, got, 1)
	assert.Equal(t, BookingCreated, got[0].Subject)

	r.Err = errors.New("down")
	assert.Error(t, r.Publish(context.Background(), ListingHosted, ListingEvent{}))
	assert.Len(t, r.Events(), 1)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ListingDeleted, ListingEvent{}))
	assert.NoError(t, p.Close())
}

func TestBookingCreatedEventJSON(t *testing.T) {
	evt := BookingCreatedEvent{
		BookingID:  "b1",
		ListingID:  "l1",
		Total:      300,
		ChargeID:   "ch_1",
		OccurredAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "b1", fields["booking_id"])
	assert.Equal(t, float64(300), fields["total"])
	assert.Equal(t, "2024-03-01T00:00:00Z", fields["occurred_at"])
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", zap.NewNop())
	assert.Error(t, err)
}
