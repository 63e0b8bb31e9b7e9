package notification

import (
	"context"
	"time"

	"github.com/adiallo/orderflow/internal/adapter/config"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/adiallo/orderflow/pkg/metrics"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	pollInterval = 2 * time.Second
	batchSize    = 50
)

// Dispatcher delivers outbox events to the broker at least once. The mail
// and push consumers live downstream; a delivery failure here never touches
// the orders that produced the events.
type Dispatcher struct {
	source port.OutboxSource
	writer *kafka.Writer
	logger *zap.Logger
}

func NewDispatcher(cfg *config.Kafka, source port.OutboxSource, log *zap.Logger) (*Dispatcher, error) {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}

	return &Dispatcher{
		source: source,
		writer: writer,
		logger: log,
	}, nil
}

// Run polls the outbox until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.dispatchPending(ctx); err != nil {
				d.logger.Error("dispatch pending events", zap.Error(err))
			}
		case <-ctx.Done():
			if err := d.writer.Close(); err != nil {
				d.logger.Error("close kafka writer", zap.Error(err))
			}
			return
		}
	}
}

func (d *Dispatcher) dispatchPending(ctx context.Context) error {
	records, err := d.source.FetchPendingEvents(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, rec := range records {
		message := kafka.Message{
			// keyed by order so consumers see one order's events in order
			Key:   []byte(rec.Event.OrderID),
			Value: rec.Event.Payload,
			Headers: []kafka.Header{
				{Key: "kind", Value: []byte(rec.Event.Kind)},
				{Key: "event_id", Value: []byte(rec.Event.ID)},
			},
		}

		if err := d.writer.WriteMessages(ctx, message); err != nil {
			d.logger.Error("publish event",
				zap.String("event", rec.Event.ID), zap.Error(err))
			continue
		}

		if err := d.source.MarkEventSent(ctx, rec.ID); err != nil {
			// the event will be re-delivered, consumers dedupe by event_id
			d.logger.Error("mark event sent",
				zap.String("event", rec.Event.ID), zap.Error(err))
			continue
		}
		metrics.EventsDispatched.Inc()
	}

	return nil
}
