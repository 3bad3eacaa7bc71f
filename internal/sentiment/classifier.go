package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"sentimeter/internal/config"
	"sentimeter/internal/errors"
	"sentimeter/pkg/contracts/domain"
)

// Capability is the pretrained classification model consumed by the
// classifier. One call scores one chunk of texts and must return exactly one
// probability distribution per input, in input order. The capability may hold
// cached state across calls but is stateless per call.
type Capability interface {
	Classify(ctx context.Context, batch []string) ([]domain.Scores, error)
}

// Classifier runs chunked model inference over cleaned rows. Chunking bounds
// peak memory independent of total row count; batch boundaries are invisible
// to the caller because output order and count always match the input.
type Classifier struct {
	capability Capability
	logger     *slog.Logger
	batchSize  int
}

// NewClassifier creates a classifier over the given model capability.
func NewClassifier(capability Capability, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		capability: capability,
		logger:     logger.With(slog.String("component", "classifier")),
		batchSize:  config.BatchSize,
	}
}

// ClassifyRows produces one ClassifiedRow per input row, preserving order and
// original indices. A model error on any chunk fails the whole call: partial
// results cannot satisfy the count/percentage guarantees downstream.
func (c *Classifier) ClassifyRows(ctx context.Context, rows []domain.CleanedRow) ([]domain.ClassifiedRow, error) {
	classified := make([]domain.ClassifiedRow, 0, len(rows))

	for start := 0; start < len(rows); start += c.batchSize {
		end := start + c.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		texts := make([]string, len(chunk))
		for i, row := range chunk {
			texts[i] = row.Text
		}

		scores, err := c.capability.Classify(ctx, texts)
		if err != nil {
			return nil, errors.NewClassificationError(
				fmt.Sprintf("model call failed on rows %d-%d", start, end-1), err)
		}
		if len(scores) != len(chunk) {
			return nil, errors.NewClassificationError(
				fmt.Sprintf("model returned %d results for %d inputs", len(scores), len(chunk)), nil)
		}

		for i, row := range chunk {
			label, confidence := Label(scores[i])
			classified = append(classified, domain.ClassifiedRow{
				Index:      row.Index,
				Text:       row.Text,
				Sentiment:  label,
				Confidence: confidence,
			})
		}
	}

	c.logger.DebugContext(ctx, "classification complete",
		slog.Int("rows", len(classified)),
		slog.Int("batch_size", c.batchSize))

	return classified, nil
}

// Label maps a raw probability distribution to the final label and
// confidence. The argmax class wins, with exact ties broken by the pinned
// POSITIVE > NEUTRAL > NEGATIVE order. Low-confidence predictions are
// relabeled NEUTRAL: below the threshold the model's pick is not
// distinguishable from noise.
func Label(scores domain.Scores) (domain.Sentiment, float64) {
	label, confidence := scores.Argmax()
	confidence = roundTo(confidence, config.ConfidencePrecision)

	if confidence < config.NeutralThreshold {
		label = domain.SentimentNeutral
	}

	return label, confidence
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
