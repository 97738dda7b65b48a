package kafka

import (
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize     = 64
	batchTimeout  = 1 * time.Second
	retryInterval = 100 * time.Millisecond
	maxRetry      = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch collects up to batchSize messages or whatever arrived
// within batchTimeout and hands them to processBatch.
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	flush := func() {
		if len(batch) > 0 {
			processBatch(session, batch, logic)
			batch = make([]*sarama.ConsumerMessage, 0, batchSize)
		}
	}

	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch applies logic to the messages in offset order and marks the
// last one. A failing message is retried with capped backoff until it succeeds
// or the session ends; the offset is not marked in the latter case.
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := session.Context()
	for _, m := range messages {
		if !retryUntilDone(ctx, m, logic) {
			return
		}
	}
	session.MarkMessage(messages[len(messages)-1], "")
}

func retryUntilDone(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	wait := retryInterval
	for {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		log.Error("process message error", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
		wait = min(wait*2, maxRetry)
	}
}
