package pipeline

import (
	"math"

	"sentimeter/internal/config"
	"sentimeter/pkg/contracts/domain"
)

// Aggregate computes the per-label summary over the full classified set.
// All three labels are always present in the summary; empty classes report
// zero count and 0.0 average confidence rather than NaN. Callers must not
// pass an empty slice; the orchestrator rejects empty inputs before
// aggregation so percentages never divide by zero.
func Aggregate(rows []domain.ClassifiedRow) domain.SentimentSummary {
	total := len(rows)

	counts := make(map[domain.Sentiment]int, len(domain.SentimentOrder))
	confidenceSums := make(map[domain.Sentiment]float64, len(domain.SentimentOrder))
	for _, row := range rows {
		counts[row.Sentiment]++
		confidenceSums[row.Sentiment] += row.Confidence
	}

	summary := make(domain.SentimentSummary, len(domain.SentimentOrder))
	for _, label := range domain.SentimentOrder {
		count := counts[label]

		avgConfidence := 0.0
		if count > 0 {
			avgConfidence = roundTo(confidenceSums[label]/float64(count), config.ConfidencePrecision)
		}

		summary[label] = domain.LabelStats{
			Count:         count,
			Percentage:    roundTo(float64(count)/float64(total)*100, config.PercentPrecision),
			AvgConfidence: avgConfidence,
		}
	}

	return summary
}

// MeanConfidence returns the average confidence over all rows, rounded to
// the pinned precision.
func MeanConfidence(rows []domain.ClassifiedRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range rows {
		sum += row.Confidence
	}
	return roundTo(sum/float64(len(rows)), config.ConfidencePrecision)
}

// SampleRows returns the deterministic display sample: the first limit rows
// in original file order. Repeated runs on identical input yield identical
// samples.
func SampleRows(rows []domain.ClassifiedRow, limit int) []domain.ClassifiedRow {
	if limit <= 0 || len(rows) <= limit {
		samples := make([]domain.ClassifiedRow, len(rows))
		copy(samples, rows)
		return samples
	}
	samples := make([]domain.ClassifiedRow, limit)
	copy(samples, rows[:limit])
	return samples
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
