package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/ingest"
	"sentimeter/pkg/contracts/domain"
)

func TestMapGroundTruth(t *testing.T) {
	tests := []struct {
		value string
		want  domain.Sentiment
		ok    bool
	}{
		{"POSITIVE", domain.SentimentPositive, true},
		{"positive", domain.SentimentPositive, true},
		{"  neg  ", domain.SentimentNegative, true},
		{"Good", domain.SentimentPositive, true},
		{"bad", domain.SentimentNegative, true},
		{"okay", domain.SentimentNeutral, true},
		{"mixed", domain.SentimentNeutral, true},
		{"1", domain.SentimentNegative, true},
		{"2", domain.SentimentNegative, true},
		{"3", domain.SentimentNeutral, true},
		{"4", domain.SentimentPositive, true},
		{"5", domain.SentimentPositive, true},
		{"4.5", domain.SentimentPositive, true},
		{"", "", false},
		{"maybe", "", false},
		{"??", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := MapGroundTruth(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildValidation(t *testing.T) {
	table := &ingest.Table{
		Header: []string{"text", "sentiment"},
		Rows: [][]string{
			{"love it", "positive"},
			{"hate it", "negative"},
			{"fine", "neutral"},
			{"broken", "negative"},
		},
	}

	classified := []domain.ClassifiedRow{
		{Index: 0, Text: "love it", Sentiment: domain.SentimentPositive, Confidence: 0.9},
		{Index: 1, Text: "hate it", Sentiment: domain.SentimentNegative, Confidence: 0.8},
		{Index: 2, Text: "fine", Sentiment: domain.SentimentNeutral, Confidence: 0.6},
		{Index: 3, Text: "broken", Sentiment: domain.SentimentPositive, Confidence: 0.7},
	}

	report := BuildValidation(table, "sentiment", classified)
	require.NotNil(t, report)

	assert.Equal(t, "sentiment", report.Column)
	assert.Equal(t, 4, report.Samples)
	assert.Equal(t, 3, report.Correct)
	assert.InDelta(t, 0.75, report.Accuracy, 1e-9)
	// Confidences 0.9, 0.8 and 0.7 clear the high-confidence bar; 0.6 does not.
	assert.Equal(t, 3, report.HighConfidence)

	require.Len(t, report.Misclassified, 1)
	assert.Equal(t, 3, report.Misclassified[0].Index)
	assert.Equal(t, domain.SentimentNegative, report.Misclassified[0].Expected)
	assert.Equal(t, domain.SentimentPositive, report.Misclassified[0].Predicted)

	assert.InDelta(t, (0.9+0.8+0.6)/3, report.CorrectConfidence, 1e-4)
	assert.InDelta(t, 0.7, report.ErrorConfidence, 1e-9)

	// Per-class recall: positive and neutral perfect, negative 1 of 2.
	assert.InDelta(t, 1.0, report.PerClass[domain.SentimentPositive], 1e-9)
	assert.InDelta(t, 1.0, report.PerClass[domain.SentimentNeutral], 1e-9)
	assert.InDelta(t, 0.5, report.PerClass[domain.SentimentNegative], 1e-9)

	// Confusion matrix rows sum to the true-class supports.
	require.Len(t, report.ConfusionMatrix, 3)
	rowSum := func(row []int) int {
		s := 0
		for _, v := range row {
			s += v
		}
		return s
	}
	// Order follows POSITIVE, NEUTRAL, NEGATIVE.
	assert.Equal(t, 1, rowSum(report.ConfusionMatrix[0]))
	assert.Equal(t, 1, rowSum(report.ConfusionMatrix[1]))
	assert.Equal(t, 2, rowSum(report.ConfusionMatrix[2]))
}

func TestBuildValidationSkipsUnmappableValues(t *testing.T) {
	table := &ingest.Table{
		Header: []string{"text", "label"},
		Rows: [][]string{
			{"good stuff", "positive"},
			{"whatever", "???"},
		},
	}

	classified := []domain.ClassifiedRow{
		{Index: 0, Sentiment: domain.SentimentPositive, Confidence: 0.9},
		{Index: 1, Sentiment: domain.SentimentNeutral, Confidence: 0.5},
	}

	report := BuildValidation(table, "label", classified)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Samples)
	assert.Equal(t, 1, report.Correct)
}

func TestBuildValidationNoUsableGroundTruth(t *testing.T) {
	table := &ingest.Table{
		Header: []string{"text", "label"},
		Rows:   [][]string{{"hello", "???"}},
	}
	classified := []domain.ClassifiedRow{{Index: 0, Sentiment: domain.SentimentNeutral}}

	assert.Nil(t, BuildValidation(table, "label", classified))
	assert.Nil(t, BuildValidation(table, "missing_column", classified))
}

func TestBuildValidationPerfectScore(t *testing.T) {
	table := &ingest.Table{
		Header: []string{"text", "rating"},
		Rows:   [][]string{{"great", "5"}, {"awful", "1"}},
	}
	classified := []domain.ClassifiedRow{
		{Index: 0, Sentiment: domain.SentimentPositive, Confidence: 0.95},
		{Index: 1, Sentiment: domain.SentimentNegative, Confidence: 0.9},
	}

	report := BuildValidation(table, "rating", classified)
	require.NotNil(t, report)
	assert.InDelta(t, 1.0, report.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, report.Precision, 1e-9)
	assert.InDelta(t, 1.0, report.Recall, 1e-9)
	assert.InDelta(t, 1.0, report.F1Score, 1e-9)
	assert.Empty(t, report.Misclassified)
}
