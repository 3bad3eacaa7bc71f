package pipeline

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"sentimeter/internal/config"
	"sentimeter/internal/errors"
	"sentimeter/internal/infrastructure"
	"sentimeter/internal/ingest"
	"sentimeter/internal/sentiment"
	"sentimeter/internal/translate"
	"sentimeter/pkg/contracts/domain"
)

// Request is one analysis call: raw uploaded file bytes plus the
// translation flag. Validate controls whether a ground-truth column, when
// present, produces a validation report.
type Request struct {
	Filename  string
	Data      []byte
	Translate bool
	Validate  bool
}

// Analyzer sequences the pipeline stages and enforces the request-level
// contract: the caller receives either a complete, internally consistent
// AnalysisResult or a single typed error, never a partial result. Each stage
// produces a new slice; nothing is mutated across stage boundaries and no
// state survives the call.
type Analyzer struct {
	classifier *sentiment.Classifier
	translator *translate.Adapter
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *infrastructure.AnalysisMetrics
}

// Option configures optional analyzer collaborators.
type Option func(*Analyzer)

// WithTracer attaches an OpenTelemetry tracer for per-stage spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyzer) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithMetrics attaches the pipeline instruments.
func WithMetrics(metrics *infrastructure.AnalysisMetrics) Option {
	return func(a *Analyzer) {
		a.metrics = metrics
	}
}

// NewAnalyzer creates the pipeline orchestrator.
func NewAnalyzer(classifier *sentiment.Classifier, translator *translate.Adapter, logger *slog.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Analyzer{
		classifier: classifier,
		translator: translator,
		logger:     logger.With(slog.String("component", "analyzer")),
		tracer:     noop.NewTracerProvider().Tracer("pipeline"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over one uploaded file.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*domain.AnalysisResult, error) {
	start := time.Now()
	analysisID := uuid.New().String()

	ctx, span := a.tracer.Start(ctx, "pipeline.analyze",
		trace.WithAttributes(
			attribute.String("analysis_id", analysisID),
			attribute.Bool("translate", req.Translate),
			attribute.Int("upload_bytes", len(req.Data)),
		))
	defer span.End()

	a.logger.InfoContext(ctx, "analysis started",
		slog.String("analysis_id", analysisID),
		slog.String("filename", req.Filename),
		slog.Bool("translate", req.Translate),
		slog.Int("upload_bytes", len(req.Data)))

	result, err := a.run(ctx, req, analysisID)
	duration := time.Since(start)

	if a.metrics != nil {
		a.metrics.RequestsTotal.Add(ctx, 1)
		a.metrics.RequestDuration.Record(ctx, duration.Seconds())
	}

	if err != nil {
		span.RecordError(err)
		a.recordFailure(ctx, err)
		a.logger.ErrorContext(ctx, "analysis failed",
			slog.String("analysis_id", analysisID),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return nil, err
	}

	result.AnalysisID = analysisID
	result.Duration = duration
	result.GeneratedAt = time.Now().UTC()

	a.logger.InfoContext(ctx, "analysis complete",
		slog.String("analysis_id", analysisID),
		slog.Int("total", result.Total),
		slog.Duration("duration", duration))

	return result, nil
}

// run walks the stages: parse, resolve, normalize, translate, classify,
// aggregate, validate.
func (a *Analyzer) run(ctx context.Context, req Request, analysisID string) (*domain.AnalysisResult, error) {
	table, err := a.parseStage(ctx, req)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, errors.NewEmptyInputError("file contains a header but no data rows")
	}

	textColumn, err := ingest.ResolveTextColumn(table.Header)
	if err != nil {
		return nil, err
	}

	cleaned := a.normalizeStage(ctx, table, textColumn)
	if len(cleaned) == 0 {
		return nil, errors.NewEmptyInputError("all rows were empty after cleaning")
	}

	if req.Translate {
		cleaned = a.translateStage(ctx, cleaned)
	}

	classified, err := a.classifyStage(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	if a.metrics != nil {
		a.metrics.RowsProcessed.Add(ctx, int64(len(classified)))
	}

	result := &domain.AnalysisResult{
		Total:         len(classified),
		Sentiments:    Aggregate(classified),
		Samples:       SampleRows(classified, config.SampleLimit),
		TextColumn:    textColumn,
		Translated:    req.Translate,
		AvgConfidence: MeanConfidence(classified),
	}

	if req.Validate {
		if truthColumn, ok := ingest.ResolveGroundTruthColumn(table.Header); ok {
			result.Validation = BuildValidation(table, truthColumn, classified)
		}
	}

	return result, nil
}

func (a *Analyzer) parseStage(ctx context.Context, req Request) (*ingest.Table, error) {
	_, span := a.tracer.Start(ctx, "pipeline.parse")
	defer span.End()

	table, err := ingest.Parse(req.Filename, req.Data)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", table.Len()))
	return table, nil
}

func (a *Analyzer) normalizeStage(ctx context.Context, table *ingest.Table, textColumn string) []domain.CleanedRow {
	_, span := a.tracer.Start(ctx, "pipeline.normalize")
	defer span.End()

	cleaned := ingest.Normalize(table, textColumn)
	dropped := table.Len() - len(cleaned)
	span.SetAttributes(
		attribute.Int("cleaned", len(cleaned)),
		attribute.Int("dropped", dropped))

	if dropped > 0 {
		if a.metrics != nil {
			a.metrics.RowsDropped.Add(ctx, int64(dropped))
		}
		a.logger.InfoContext(ctx, "dropped unusable rows",
			slog.Int("dropped", dropped),
			slog.Int("remaining", len(cleaned)))
	}

	return cleaned
}

func (a *Analyzer) translateStage(ctx context.Context, rows []domain.CleanedRow) []domain.CleanedRow {
	ctx, span := a.tracer.Start(ctx, "pipeline.translate")
	defer span.End()

	if a.metrics != nil {
		a.metrics.Translations.Add(ctx, int64(len(rows)))
	}
	return a.translator.TranslateRows(ctx, rows)
}

func (a *Analyzer) classifyStage(ctx context.Context, rows []domain.CleanedRow) ([]domain.ClassifiedRow, error) {
	ctx, span := a.tracer.Start(ctx, "pipeline.classify",
		trace.WithAttributes(attribute.Int("rows", len(rows))))
	defer span.End()

	classified, err := a.classifier.ClassifyRows(ctx, rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return classified, nil
}

func (a *Analyzer) recordFailure(ctx context.Context, err error) {
	if a.metrics == nil {
		return
	}
	kind := "internal"
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		kind = string(appErr.Type)
	}
	a.metrics.RecordFailure(ctx, kind)
}
