package events

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/logger"
)

// Publisher publishes committed collection events to a message stream
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	PublishEvent(ctx context.Context, event *domain.CollectionEvent) error
	Close()
}

// PublisherConfig holds the configuration for the NATS JetStream publisher
type PublisherConfig struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	PublishRetries uint64
}

type publisher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	cfg    PublisherConfig
	json   adapter.JSON
	tries  uint64
	prefix string
}

// NewPublisher creates a new NATS JetStream publisher for collection events
func NewPublisher(cfg PublisherConfig, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "collection"
	}
	tries := cfg.PublishRetries
	if tries == 0 {
		tries = 3
	}

	return &publisher{
		nc:     nc,
		js:     js,
		cfg:    cfg,
		json:   jsonAdapter,
		tries:  tries,
		prefix: prefix,
	}, nil
}

// PublishEvent publishes a collection event, retrying transient failures
// with exponential backoff
func (p *publisher) PublishEvent(ctx context.Context, event *domain.CollectionEvent) error {
	logger.Debug("Publishing collection event", zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Format: <prefix>.<event_type>, e.g. collection.token.minted
	subject := fmt.Sprintf("%s.%s", p.prefix, event.Type)

	operation := func() error {
		_, err := p.js.Publish(ctx, subject, data)
		return err
	}

	err = backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.tries), ctx))
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}
	p.nc.Close()
}
