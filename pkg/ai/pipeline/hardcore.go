package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"deepsea-be/pkg/ai/artifact"
	"deepsea-be/pkg/ai/prompt"
	"deepsea-be/pkg/llm"
	"deepsea-be/pkg/telemetry"
)

// Per-step tunables. Named constants because the deadline budget depends on
// their cumulative latency: plan + draft must normally finish inside the
// budget, leaving review + fallback as best-effort extras.
const (
	planMaxTokens     = 256
	draftMaxTokens    = 4096
	reviewMaxTokens   = 512
	fallbackMaxTokens = 4096

	planTemperature     = 0.3
	draftTemperature    = 0.7
	reviewTemperature   = 0.2
	fallbackTemperature = 0.5

	planTimeout     = 3 * time.Second
	draftTimeout    = 8 * time.Second
	reviewTimeout   = 3 * time.Second
	fallbackTimeout = 10 * time.Second

	// DeadlineBudget is the wall-clock checkpoint evaluated once at the
	// DRAFT→REVIEW boundary. Checkpoint-based, never preemptive.
	DeadlineBudget = 8000 * time.Millisecond
)

// HardcoreConfig carries the per-deployment knobs of the pipeline.
type HardcoreConfig struct {
	DeadlineBudget time.Duration
	Thresholds     artifact.Thresholds
}

func DefaultHardcoreConfig() HardcoreConfig {
	return HardcoreConfig{
		DeadlineBudget: DeadlineBudget,
		Thresholds:     artifact.DefaultThresholds(),
	}
}

// HardcoreResult is the delivered answer plus the telemetry record that
// described how it was produced.
type HardcoreResult struct {
	Answer string
	Log    telemetry.PipelineLog
}

// HardcorePipeline runs the PLAN → DRAFT → (REVIEW) → (FALLBACK) → DELIVER
// state machine. Steps execute strictly in order; each consumes the
// previous step's output. The pipeline always yields exactly one answer
// once a draft exists, regardless of later step failures.
type HardcorePipeline struct {
	primary  llm.Provider
	fallback llm.Provider
	recorder telemetry.Recorder
	logger   *log.Logger
	cfg      HardcoreConfig
}

func NewHardcorePipeline(
	primary llm.Provider,
	fallback llm.Provider,
	recorder telemetry.Recorder,
	logger *log.Logger,
	cfg HardcoreConfig,
) *HardcorePipeline {
	return &HardcorePipeline{
		primary:  primary,
		fallback: fallback,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
	}
}

// Execute runs the full pipeline for one user query. The telemetry record
// is published in every exit path, success or failure.
func (p *HardcorePipeline) Execute(ctx context.Context, userInput string) (*HardcoreResult, error) {
	start := time.Now()

	plog := telemetry.PipelineLog{
		Mode:     "hardcore",
		Provider: p.primary.Name(),
	}
	defer func() {
		p.recorder.Record(plog)
	}()

	// PLAN: advisory. A transport failure aborts the request (no draft yet);
	// an unparseable plan is replaced by the canonical fallback plan.
	stepStart := time.Now()
	planText, err := p.primary.Chat(ctx,
		[]llm.Message{{Role: "user", Content: prompt.PlanPrompt(userInput)}},
		llm.WithMaxTokens(planMaxTokens),
		llm.WithTemperature(planTemperature),
		llm.WithTimeout(planTimeout),
	)
	plog.PlanLatencyMs = time.Since(stepStart).Milliseconds()
	if err != nil {
		plog.Error = err.Error()
		p.logger.Printf("[HARDCORE] Plan step failed: %v", err)
		return nil, err
	}

	plan := artifact.ParsePlan(planText)
	p.logger.Printf("[HARDCORE] Plan: task=%s complexity=%s risks=%d",
		plan.TaskType, plan.ComplexityLevel, len(plan.RiskAreas))

	// DRAFT: the candidate answer. Failure here aborts the request.
	stepStart = time.Now()
	draft, err := p.primary.Chat(ctx,
		[]llm.Message{{Role: "user", Content: prompt.DraftPrompt(userInput, plan)}},
		llm.WithMaxTokens(draftMaxTokens),
		llm.WithTemperature(draftTemperature),
		llm.WithTimeout(draftTimeout),
	)
	plog.DraftLatencyMs = time.Since(stepStart).Milliseconds()
	if err != nil {
		plog.Error = err.Error()
		p.logger.Printf("[HARDCORE] Draft step failed: %v", err)
		return nil, err
	}
	draft = strings.TrimSpace(draft)

	// Deadline checkpoint. Past the budget, the draft ships as-is.
	if elapsed := time.Since(start); elapsed > p.cfg.DeadlineBudget {
		p.logger.Printf("[HARDCORE] Deadline budget exceeded after draft (%dms), delivering draft",
			elapsed.Milliseconds())
		return &HardcoreResult{Answer: draft, Log: plog}, nil
	}

	// REVIEW: best-effort. Any failure (transport, timeout, parse) degrades
	// to the optimistic fallback review so the draft is never blocked.
	stepStart = time.Now()
	review := artifact.FallbackReview()
	reviewText, err := p.primary.Chat(ctx,
		[]llm.Message{{Role: "user", Content: prompt.ReviewPrompt(userInput, plan, draft)}},
		llm.WithMaxTokens(reviewMaxTokens),
		llm.WithTemperature(reviewTemperature),
		llm.WithTimeout(reviewTimeout),
	)
	plog.ReviewLatencyMs = time.Since(stepStart).Milliseconds()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			plog.Error = err.Error()
			return nil, err
		}
		p.logger.Printf("[HARDCORE] Review step failed, assuming acceptable quality: %v", err)
	} else {
		review = artifact.ParseReview(reviewText)
	}
	plog.ConfidenceScore = review.ConfidenceScore

	answer := draft

	need, reasons := artifact.ShouldFallback(review, plan, p.cfg.Thresholds)
	if need {
		p.logger.Printf("[HARDCORE] Fallback triggered: %s", strings.Join(reasons, "; "))

		stepStart = time.Now()
		rewritten, err := p.fallback.Chat(ctx,
			[]llm.Message{{Role: "user", Content: prompt.FallbackPrompt(userInput, draft, review)}},
			llm.WithMaxTokens(fallbackMaxTokens),
			llm.WithTemperature(fallbackTemperature),
			llm.WithTimeout(fallbackTimeout),
		)
		plog.FallbackLatencyMs = time.Since(stepStart).Milliseconds()
		if err != nil {
			// The draft still exists; a failed rewrite must not sink the request.
			plog.Error = err.Error()
			p.logger.Printf("[HARDCORE] Fallback provider failed, delivering draft: %v", err)
		} else if rewritten = strings.TrimSpace(rewritten); rewritten != "" {
			answer = rewritten
			plog.FallbackTriggered = true
			plog.Provider = p.fallback.Name()
		}
	}

	p.logger.Printf("[HARDCORE] Delivered via %s (confidence=%.2f, fallback=%v, total=%dms)",
		plog.Provider, plog.ConfidenceScore, plog.FallbackTriggered, time.Since(start).Milliseconds())

	return &HardcoreResult{Answer: answer, Log: plog}, nil
}
