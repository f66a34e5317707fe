// Package events publishes domain changes to subscribers outside the process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const subjectPrefix = "rentbook"

// Entities
const (
	EntityProperty = "property"
	EntityRoom     = "room"
	EntityTenant   = "tenant"
	EntityPayment  = "payment"
)

// Actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionVacated = "vacated"
	ActionPaid    = "paid"
)

// Subject builds the subject for an entity change, e.g. rentbook.tenant.vacated
func Subject(entity, action string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, entity, action)
}

// Envelope wraps every published payload
type Envelope struct {
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher delivers domain events
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

// Noop discards every event
type Noop struct{}

func (Noop) Publish(ctx context.Context, subject string, data any) error { return nil }
func (Noop) Close() error                                                { return nil }

// NATSPublisher publishes JSON envelopes on a core NATS connection
type NATSPublisher struct {
	conn   *nats.Conn
	logger *logrus.Logger
	now    func() time.Time
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string, logger *logrus.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("rentbook"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Infof("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Infof("Connected to NATS at %s", conn.ConnectedUrl())
	return &NATSPublisher{conn: conn, logger: logger, now: time.Now}, nil
}

// Publish checks the context, then sends the encoded envelope
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	payload, err := Encode(subject, data, p.now())
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Encode marshals data into an Envelope
func Encode(subject string, data any, at time.Time) ([]byte, error) {
	payload, err := json.Marshal(Envelope{Subject: subject, OccurredAt: at, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return payload, nil
}
