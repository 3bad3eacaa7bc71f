package pipeline

import (
	"strconv"
	"strings"

	"sentimeter/internal/config"
	"sentimeter/internal/ingest"
	"sentimeter/pkg/contracts/domain"
)

// Word variants accepted as ground-truth labels beyond the canonical three.
var (
	positiveWords = map[string]struct{}{
		"POSITIVE": {}, "POS": {}, "GOOD": {}, "HAPPY": {}, "SATISFIED": {}, "TRUE": {},
	}
	negativeWords = map[string]struct{}{
		"NEGATIVE": {}, "NEG": {}, "BAD": {}, "UNHAPPY": {}, "UNSATISFIED": {}, "FALSE": {},
	}
	neutralWords = map[string]struct{}{
		"NEUTRAL": {}, "NEU": {}, "OKAY": {}, "OK": {}, "MIXED": {}, "AVERAGE": {},
	}
)

// MapGroundTruth converts a free-form ground-truth cell into a sentiment
// label. Accepts the canonical labels, common word variants, and numeric
// star ratings (at most 2 is negative, exactly 3 neutral, above positive).
// Returns false for values that map to nothing; such rows are skipped by
// validation rather than treated as errors.
func MapGroundTruth(value string) (domain.Sentiment, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}

	if s := domain.Sentiment(v); s.Valid() {
		return s, true
	}
	if _, ok := positiveWords[v]; ok {
		return domain.SentimentPositive, true
	}
	if _, ok := negativeWords[v]; ok {
		return domain.SentimentNegative, true
	}
	if _, ok := neutralWords[v]; ok {
		return domain.SentimentNeutral, true
	}

	if rating, err := strconv.ParseFloat(v, 64); err == nil {
		switch {
		case rating <= 2:
			return domain.SentimentNegative, true
		case rating == 3:
			return domain.SentimentNeutral, true
		default:
			return domain.SentimentPositive, true
		}
	}

	return "", false
}

// BuildValidation compares predictions against the ground-truth column and
// computes accuracy, weighted precision/recall/F1, per-class accuracy and a
// confusion matrix. Rows whose ground-truth value maps to nothing are
// excluded from every metric. Returns nil when no row has usable ground
// truth.
func BuildValidation(table *ingest.Table, truthColumn string, classified []domain.ClassifiedRow) *domain.ValidationReport {
	col := table.ColumnIndex(truthColumn)
	if col < 0 {
		return nil
	}

	labelPos := make(map[domain.Sentiment]int, len(domain.SentimentOrder))
	for i, label := range domain.SentimentOrder {
		labelPos[label] = i
	}

	confusion := make([][]int, len(domain.SentimentOrder))
	for i := range confusion {
		confusion[i] = make([]int, len(domain.SentimentOrder))
	}

	var (
		samples, correct   int
		highConfidence     int
		correctConfSum     float64
		errorConfSum       float64
		misclassified      []domain.MisclassifiedRow
		trueCounts         = make(map[domain.Sentiment]int)
		predictedCounts    = make(map[domain.Sentiment]int)
		truePositiveCounts = make(map[domain.Sentiment]int)
	)

	for _, row := range classified {
		expected, ok := MapGroundTruth(table.Value(row.Index, col))
		if !ok {
			continue
		}

		samples++
		if row.Confidence >= config.HighConfidenceThreshold {
			highConfidence++
		}
		trueCounts[expected]++
		predictedCounts[row.Sentiment]++
		confusion[labelPos[expected]][labelPos[row.Sentiment]]++

		if row.Sentiment == expected {
			correct++
			truePositiveCounts[expected]++
			correctConfSum += row.Confidence
			continue
		}

		errorConfSum += row.Confidence
		if len(misclassified) < config.MisclassifiedLimit {
			misclassified = append(misclassified, domain.MisclassifiedRow{
				Index:      row.Index,
				Text:       row.Text,
				Expected:   expected,
				Predicted:  row.Sentiment,
				Confidence: row.Confidence,
			})
		}
	}

	if samples == 0 {
		return nil
	}

	report := &domain.ValidationReport{
		Column:          truthColumn,
		Samples:         samples,
		Correct:         correct,
		Accuracy:        roundTo(float64(correct)/float64(samples), config.ConfidencePrecision),
		HighConfidence:  highConfidence,
		PerClass:        make(map[domain.Sentiment]float64, len(domain.SentimentOrder)),
		ConfusionMatrix: confusion,
		Misclassified:   misclassified,
	}

	// Weighted precision/recall/F1: per-class metrics weighted by true
	// class support, matching the usual weighted average convention.
	var precisionSum, recallSum, f1Sum float64
	for _, label := range domain.SentimentOrder {
		support := trueCounts[label]
		tp := truePositiveCounts[label]

		var precision, recall, f1 float64
		if predictedCounts[label] > 0 {
			precision = float64(tp) / float64(predictedCounts[label])
		}
		if support > 0 {
			recall = float64(tp) / float64(support)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		weight := float64(support) / float64(samples)
		precisionSum += precision * weight
		recallSum += recall * weight
		f1Sum += f1 * weight

		if support > 0 {
			report.PerClass[label] = roundTo(recall, config.ConfidencePrecision)
		}
	}

	report.Precision = roundTo(precisionSum, config.ConfidencePrecision)
	report.Recall = roundTo(recallSum, config.ConfidencePrecision)
	report.F1Score = roundTo(f1Sum, config.ConfidencePrecision)

	if correct > 0 {
		report.CorrectConfidence = roundTo(correctConfSum/float64(correct), config.ConfidencePrecision)
	}
	if wrong := samples - correct; wrong > 0 {
		report.ErrorConfidence = roundTo(errorConfSum/float64(wrong), config.ConfidencePrecision)
	}

	return report
}
