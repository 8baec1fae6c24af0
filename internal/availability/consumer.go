package availability

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Consumer listens for availability-changed events and triggers a full
// refetch of the local map. Message payloads are ignored on purpose: the
// event only says "something changed".
type Consumer struct {
	svc    *Service
	reader *kafka.Reader
}

// NewConsumer creates a consumer over the given reader.
func NewConsumer(svc *Service, reader *kafka.Reader) *Consumer {
	return &Consumer{svc: svc, reader: reader}
}

// Run reads change events until the context is cancelled. Intended to be
// launched as a goroutine from main.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Msgf("Error reading availability event: %v", err)
			continue
		}

		logger.Info().Msgf("Availability change event %s, refreshing", string(msg.Key))
		if err := c.svc.Refresh(ctx); err != nil {
			logger.Error().Msgf("Error refreshing availability after event: %v", err)
		}
	}
}
