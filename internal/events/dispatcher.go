package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/logger"
	"github.com/feral-file/ff-collection/internal/store"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

// EventTypeWildcard subscribes a webhook client to every event type
const EventTypeWildcard = "*"

// DispatcherConfig holds webhook dispatcher configuration
type DispatcherConfig struct {
	// PoolSize bounds concurrent deliveries
	PoolSize int
	// DeliveryTimeout bounds a single delivery attempt
	DeliveryTimeout time.Duration
}

// Dispatcher fans out committed collection events: it publishes each event
// to the stream publisher and delivers it to every subscribed webhook
// client. Fan-out happens on a worker pool, post-commit; failures are
// logged, never propagated back into the ledger.
type Dispatcher struct {
	cfg       DispatcherConfig
	pool      pond.Pool
	publisher Publisher
	store     store.Store
	http      adapter.HTTPClient
	json      adapter.JSON
	jcs       adapter.JCS
	clock     adapter.Clock
}

// NewDispatcher creates an event dispatcher. The publisher may be nil when
// no stream is configured.
func NewDispatcher(cfg DispatcherConfig, publisher Publisher, st store.Store, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS, clock adapter.Clock) *Dispatcher {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 10
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 30 * time.Second
	}

	return &Dispatcher{
		cfg:       cfg,
		pool:      pond.NewPool(cfg.PoolSize),
		publisher: publisher,
		store:     st,
		http:      httpClient,
		json:      jsonAdapter,
		jcs:       jcsAdapter,
		clock:     clock,
	}
}

// Emit schedules fan-out of a committed event. Implements ledger.EventSink.
func (d *Dispatcher) Emit(event domain.CollectionEvent) {
	d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
		defer cancel()

		if d.publisher != nil {
			if err := d.publisher.PublishEvent(ctx, &event); err != nil {
				logger.ErrorCtx(ctx, err,
					zap.String("component", "dispatcher"),
					zap.String("event_id", event.EventID))
			}
		}

		d.deliverWebhooks(ctx, &event)
	})
}

// Stop drains the worker pool, waiting for in-flight deliveries
func (d *Dispatcher) Stop() {
	d.pool.StopAndWait()
}

// deliverWebhooks delivers the event to every subscribed active client
func (d *Dispatcher) deliverWebhooks(ctx context.Context, event *domain.CollectionEvent) {
	if d.store == nil {
		return
	}

	clients, err := d.store.ListActiveWebhookClients(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "dispatcher"))
		return
	}

	for _, client := range clients {
		if !clientSubscribed(client, event.Type) {
			continue
		}
		d.deliver(ctx, client, event)
	}
}

// deliver sends one signed delivery to one client
func (d *Dispatcher) deliver(ctx context.Context, client schema.WebhookClient, event *domain.CollectionEvent) {
	payload, signature, timestamp, err := GenerateSignedPayload(client.Secret, event, d.json, d.jcs, d.clock)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("component", "dispatcher"),
			zap.String("client_id", client.ID))
		return
	}

	headers := map[string]string{
		"Content-Type":        "application/json",
		"X-Webhook-Signature": signature,
		"X-Webhook-Timestamp": fmt.Sprintf("%d", timestamp),
		"X-Webhook-Event-ID":  event.EventID,
	}

	result, err := d.http.Post(ctx, client.URL, headers, payload)
	if err != nil {
		logger.WarnCtx(ctx, "Webhook delivery failed",
			zap.Error(err),
			zap.String("client_id", client.ID),
			zap.String("event_id", event.EventID))
		return
	}

	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusMultipleChoices {
		logger.WarnCtx(ctx, "Webhook delivery rejected",
			zap.Int("status", result.StatusCode),
			zap.String("client_id", client.ID),
			zap.String("event_id", event.EventID),
			zap.ByteString("body", result.Body))
		return
	}

	logger.Debug("Webhook delivered",
		zap.String("client_id", client.ID),
		zap.String("event_id", event.EventID))
}

// clientSubscribed checks the client's event type filter
func clientSubscribed(client schema.WebhookClient, eventType domain.EventType) bool {
	var types []string
	if err := json.Unmarshal(client.EventTypes, &types); err != nil {
		return false
	}
	for _, t := range types {
		if t == EventTypeWildcard || t == string(eventType) {
			return true
		}
	}
	return false
}
