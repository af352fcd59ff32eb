package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher fans domain events out to other services. Publishing is best
// effort: callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Subjects.
const (
	BookingCreated = "booking.created"
	ListingHosted  = "listing.hosted"
	ListingDeleted = "listing.deleted"
)

type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	ListingID  string    `json:"listing_id"`
	TenantID   string    `json:"tenant_id"`
	HostID     string    `json:"host_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Total      int64     `json:"total"`
	ChargeID   string    `json:"charge_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ListingEvent struct {
	ListingID  string    `json:"listing_id"`
	HostID     string    `json:"host_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NATSPublisher publishes JSON payloads on a NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("homesweethome"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	n.logger.Debug("Publishing event", zap.String("subject", subject), zap.ByteString("data", payload))
	return n.conn.Publish(subject, payload)
}

// Close flushes pending messages before closing.
func (n *NATSPublisher) Close() error {
	err := n.conn.Drain()
	if err != nil {
		n.conn.Close()
	}
	return err
}

// NopPublisher drops every event. Used when NATS_URL is empty.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }
