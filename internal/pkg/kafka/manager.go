package kafka

import (
	"MindGarden/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager owns the Kafka consumer groups of the process.
type ConsumerManager struct {
	checkinConsumer sarama.ConsumerGroup
	checkinHandler  sarama.ConsumerGroupHandler
	checkinTopic    string
}

func NewConsumerManager(cfg *config.Config, dirty DirtyMarker) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	checkinConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCheckinConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		checkinConsumer: checkinConsumer,
		checkinHandler:  NewCheckinHandler(dirty),
		checkinTopic:    cfg.KafkaCheckinConsumer.Topic,
	}, nil
}

// Start consumes until ctx is cancelled and then closes the groups.
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.checkinConsumer.Errors() {
			log.Error("checkin consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Checkin consumer started", "topic", m.checkinTopic)
		for {
			if err := m.checkinConsumer.Consume(ctx, []string{m.checkinTopic}, m.checkinHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.checkinConsumer.Close(); err != nil {
		log.Error("Failed to close checkin consumer", "err", err)
		return err
	}
	return nil
}
