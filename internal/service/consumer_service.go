package service

import (
	"context"
	"encoding/json"

	"swipenotes/internal/dto"
	"swipenotes/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the sync event topic and writes each event to the
// isolated event log, where a notification surface can pick them up.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, eventLogger logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    eventLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.SyncEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// Ack invalid messages to prevent infinite retry.
		cs.logger.Warn("events", "failed to unmarshal sync event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info("events", payload.Type, map[string]interface{}{
		"user_id":   payload.UserId,
		"note_id":   payload.NoteId,
		"synced":    payload.Synced,
		"conflicts": payload.Conflicts,
		"failures":  payload.Failures,
		"error":     payload.Error,
	})
	msg.Ack()
}
