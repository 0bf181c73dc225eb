package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/credits"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/llm"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/ocr"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/profile"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/records"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/resumecheck"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/metrics"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/telemetry"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/truncate"
)

// DefensiveATSScore is synthesized when the structured result lacks a
// score but the raw text still carries a name or education signal.
const DefensiveATSScore = 60

// Extractor is the text extraction step.
type Extractor interface {
	Extract(ctx context.Context, ref ocr.DocumentRef, opts ocr.Options) (ocr.ExtractionResult, error)
}

// Analyzer is the analysis step. It degrades instead of failing.
type Analyzer interface {
	Analyze(ctx context.Context, in llm.AnalyzeInput) llm.Result
}

// Service coordinates one processing run: credit debit, extraction,
// heuristic validation, truncation, analysis, persistence, and the
// compensating refund when the run fails after the debit.
type Service struct {
	Extractor Extractor
	Analyzer  Analyzer
	Ledger    *credits.Ledger
	Records   records.Repo
	Limits    []truncate.SectionLimit
	Model     string
	PlanRef   string
}

// ProcessInput is one inbound processing request.
type ProcessInput struct {
	AccountID            string
	SourceURI            string
	Inline               string
	Options              ocr.Options
	ModelID              string
	PromptOverride       string
	SystemPromptOverride string
}

// ProcessOutput is a successful processing result. Warning is non-empty
// when the analysis degraded to the fallback profile.
type ProcessOutput struct {
	Record  records.Record      `json:"record"`
	Warning string              `json:"warning,omitempty"`
	Verdict resumecheck.Verdict `json:"verdict"`
}

// Process runs the saga. A debit is always paired with exactly one of a
// persisted record or a refund; there is no third outcome.
func (s *Service) Process(ctx context.Context, in ProcessInput) (out ProcessOutput, err error) {
	attemptID := uuid.NewString()
	startedAt := time.Now().UTC()

	account, err := s.Ledger.Get(ctx, in.AccountID)
	if err != nil {
		return ProcessOutput{}, fmt.Errorf("credit lookup: %w", err)
	}
	if !account.HasCredit() {
		return ProcessOutput{}, ErrInsufficientCredit
	}

	if _, err := s.Ledger.Debit(ctx, in.AccountID); err != nil {
		return ProcessOutput{}, err
	}
	metrics.IncPipelineStarted()
	debited := !account.IsUnlimited
	resolved := false

	refund := func(reason string) {
		if !debited || resolved {
			return
		}
		resolved = true
		// Compensation must run even when the caller's context is gone.
		if _, refundErr := s.Ledger.Refund(context.Background(), in.AccountID); refundErr != nil {
			telemetry.Error("pipeline.refund", map[string]any{
				"attempt_id": attemptID,
				"account_id": in.AccountID,
				"reason":     reason,
				"error":      refundErr.Error(),
			})
			return
		}
		metrics.IncCreditRefund()
		telemetry.Info("pipeline.refund", map[string]any{
			"attempt_id": attemptID,
			"account_id": in.AccountID,
			"reason":     reason,
		})
	}

	defer func() {
		if rec := recover(); rec != nil {
			refund("panic")
			metrics.IncPipelineFailed()
			panic(rec)
		}
	}()

	result, err := s.Extractor.Extract(ctx, ocr.DocumentRef{URI: in.SourceURI, Inline: in.Inline}, in.Options)
	if err != nil {
		refund("extraction failed")
		metrics.IncPipelineFailed()
		return ProcessOutput{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	verdict := resumecheck.Validate(result.Text)
	if !verdict.IsResume {
		telemetry.Warn("pipeline.validate", map[string]any{
			"attempt_id": attemptID,
			"account_id": in.AccountID,
			"score":      verdict.Score,
			"reasons":    verdict.Reasons,
		})
	}

	limits := s.Limits
	if len(limits) == 0 {
		limits = truncate.DefaultLimits
	}
	bounded := truncate.Apply(result.Text, limits)

	modelID := in.ModelID
	if modelID == "" {
		modelID = s.Model
	}
	analysis := s.Analyzer.Analyze(ctx, llm.AnalyzeInput{
		Text:                 bounded,
		ModelID:              modelID,
		PromptOverride:       in.PromptOverride,
		SystemPromptOverride: in.SystemPromptOverride,
	})

	if err := ctx.Err(); err != nil {
		// Cancellation after debit is a pipeline failure for refund purposes.
		refund("context cancelled")
		metrics.IncPipelineFailed()
		return ProcessOutput{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	warning := ""
	if analysis.UsedFallback {
		warning = "analysis degraded: model output unavailable, heuristic fallback applied"
		metrics.IncPipelineFallback()
	}

	signal := profile.HasNameOrEducationSignal(result.Text)
	structured := analysis.Structured
	if structured == nil {
		fb := profile.Fallback(result.Text)
		structured = &fb
	}
	if structured.Analysis.ATSScore <= 0 && signal {
		structured.Analysis.ATSScore = DefensiveATSScore
	}

	if !structured.HasContactName() && len(structured.Education) == 0 && !signal {
		refund("no usable content")
		metrics.IncPipelineFailed()
		return ProcessOutput{}, ErrNoUsableContent
	}

	record := records.Record{
		ID:             uuid.NewString(),
		AccountID:      in.AccountID,
		PlanRef:        s.PlanRef,
		SourceURI:      in.SourceURI,
		AttemptID:      attemptID,
		Profile:        *structured,
		RawModelOutput: analysis.Raw,
		UsedFallback:   analysis.UsedFallback,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Records.Create(ctx, record); err != nil {
		refund("persist failed")
		metrics.IncPipelineFailed()
		return ProcessOutput{}, fmt.Errorf("persist record: %w", err)
	}
	resolved = true

	durationMs := float64(time.Since(startedAt).Microseconds()) / 1000.0
	metrics.IncPipelineCompleted()
	metrics.ObservePipelineDurationMs(durationMs)
	telemetry.Info("pipeline.complete", map[string]any{
		"attempt_id":    attemptID,
		"account_id":    in.AccountID,
		"record_id":     record.ID,
		"used_fallback": analysis.UsedFallback,
		"resume_score":  verdict.Score,
		"duration_ms":   durationMs,
	})

	return ProcessOutput{Record: record, Warning: warning, Verdict: verdict}, nil
}
