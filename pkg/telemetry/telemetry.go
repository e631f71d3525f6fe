package telemetry

import (
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// PipelineLog is the ephemeral telemetry record emitted once per hardcore
// request, at completion or failure. Written to the sink, never read back.
type PipelineLog struct {
	Mode              string  `json:"mode"`
	PlanLatencyMs     int64   `json:"step_1_plan_latency_ms,omitempty"`
	DraftLatencyMs    int64   `json:"step_2_draft_latency_ms,omitempty"`
	ReviewLatencyMs   int64   `json:"step_3_review_latency_ms,omitempty"`
	FallbackLatencyMs int64   `json:"step_4_fallback_latency_ms,omitempty"`
	ConfidenceScore   float64 `json:"confidence_score,omitempty"`
	FallbackTriggered bool    `json:"fallback_triggered"`
	Provider          string  `json:"provider"`
	Error             string  `json:"error,omitempty"`
}

// Recorder is the fire-and-forget telemetry sink consumed by the pipeline.
type Recorder interface {
	Record(l PipelineLog)
}

// Publisher pushes pipeline logs onto an in-process pub/sub topic. A
// background consumer drains the topic into the structured logger.
type Publisher struct {
	publisher message.Publisher
	topic     string
}

func NewPublisher(publisher message.Publisher, topic string) *Publisher {
	return &Publisher{
		publisher: publisher,
		topic:     topic,
	}
}

// Record publishes the log. Failures are logged and swallowed: telemetry
// must never affect the request that produced it.
func (p *Publisher) Record(l PipelineLog) {
	payload, err := json.Marshal(l)
	if err != nil {
		log.Printf("[TELEMETRY] Failed to marshal pipeline log: %v", err)
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		log.Printf("[TELEMETRY] Failed to publish pipeline log: %v", err)
	}
}

// NopRecorder discards all records. Used in tests.
type NopRecorder struct{}

func (NopRecorder) Record(PipelineLog) {}
