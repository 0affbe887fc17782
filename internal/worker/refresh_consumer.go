package worker

import (
	"context"
	"errors"

	"baile/internal/amqp"
	applog "baile/internal/log"
)

// SnapshotInvalidator is the part of the report service the consumer
// needs: dropping the cached ledger snapshot.
type SnapshotInvalidator interface {
	Invalidate()
}

// RefreshConsumer listens on the ledger refresh queue and invalidates
// the snapshot cache on every message, so the next dashboard request
// refetches the spreadsheet.
type RefreshConsumer struct {
	client *amqp.Client
	target SnapshotInvalidator
	logger *applog.Logger
}

func NewRefreshConsumer(client *amqp.Client, target SnapshotInvalidator, logger *applog.Logger) *RefreshConsumer {
	return &RefreshConsumer{
		client: client,
		target: target,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// Run blocks consuming refresh messages until the context is
// cancelled. Returns nil on cancellation and an error when the
// delivery channel is closed by the broker.
func (w *RefreshConsumer) Run(ctx context.Context) error {
	deliveries, err := w.client.Consume(ctx)
	if err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "Refresh consumer started")

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Refresh consumer stopping", applog.FieldOperation, applog.OpShutdown)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Warn("Refresh delivery channel closed by broker")
				return errors.New("refresh delivery channel closed")
			}
			msg, err := amqp.RefreshMessageFromJSON(d.Body)
			if err != nil {
				w.logger.WarnContext(ctx, "Discarding malformed refresh message", applog.FieldError, err)
				continue
			}
			w.target.Invalidate()
			w.logger.InfoContext(ctx, "Ledger snapshot invalidated",
				"reason", msg.Reason,
				"published_at", msg.Timestamp)
		}
	}
}
