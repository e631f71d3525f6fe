package service

import (
	"context"
	"encoding/json"
	"log"

	"deepsea-be/internal/pkg/logger"
	"deepsea-be/pkg/telemetry"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains pipeline telemetry off the in-process bus into the
// structured logger. Fire-and-forget from the pipeline's point of view.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	sysLogger     logger.ILogger
	debugHardcore bool
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sysLogger logger.ILogger,
	debugHardcore bool,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		sysLogger:     sysLogger,
		debugHardcore: debugHardcore,
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
	var plog telemetry.PipelineLog
	if err := json.Unmarshal(msg.Payload, &plog); err != nil {
		log.Printf("[ERROR] Failed to unmarshal pipeline log: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.debugHardcore {
		cs.sysLogger.Info("PIPELINE", "Pipeline completed", map[string]interface{}{
			"mode":                       plog.Mode,
			"step_1_plan_latency_ms":     plog.PlanLatencyMs,
			"step_2_draft_latency_ms":    plog.DraftLatencyMs,
			"step_3_review_latency_ms":   plog.ReviewLatencyMs,
			"step_4_fallback_latency_ms": plog.FallbackLatencyMs,
			"confidence_score":           plog.ConfidenceScore,
			"fallback_triggered":         plog.FallbackTriggered,
			"provider":                   plog.Provider,
			"error":                      plog.Error,
		})
	} else {
		cs.sysLogger.Info("PIPELINE", "Pipeline completed", map[string]interface{}{
			"confidence": plog.ConfidenceScore,
			"fallback":   plog.FallbackTriggered,
			"provider":   plog.Provider,
		})
	}

	msg.Ack()
}
