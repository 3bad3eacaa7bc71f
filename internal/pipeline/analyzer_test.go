package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "sentimeter/internal/errors"
	"sentimeter/internal/sentiment"
	"sentimeter/internal/translate"
	"sentimeter/pkg/contracts/domain"
)

// keywordModel scores texts by trivial keyword matching so pipeline tests can
// assert on specific labels without a real model.
type keywordModel struct{}

func (keywordModel) Classify(_ context.Context, batch []string) ([]domain.Scores, error) {
	out := make([]domain.Scores, len(batch))
	for i, text := range batch {
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "love") || strings.Contains(lower, "great"):
			out[i] = domain.Scores{Positive: 0.95, Neutral: 0.03, Negative: 0.02}
		case strings.Contains(lower, "hate") || strings.Contains(lower, "awful"):
			out[i] = domain.Scores{Positive: 0.02, Neutral: 0.05, Negative: 0.93}
		default:
			out[i] = domain.Scores{Positive: 0.2, Neutral: 0.65, Negative: 0.15}
		}
	}
	return out, nil
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	classifier := sentiment.NewClassifier(keywordModel{}, nil)
	adapter := translate.NewAdapter(nil, nil)
	return NewAnalyzer(classifier, adapter, nil)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	csvData := []byte("id,feedback,date\n" +
		"1,I love this product,2026-01-02\n" +
		"2,Absolutely awful experience,2026-01-03\n" +
		"3,,2026-01-04\n" +
		"4,It arrived on time,2026-01-05\n")

	result, err := analyzer.Analyze(context.Background(), Request{
		Filename: "reviews.csv",
		Data:     csvData,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AnalysisID)
	assert.Equal(t, "feedback", result.TextColumn)
	assert.False(t, result.Translated)
	assert.False(t, result.GeneratedAt.IsZero())

	// The empty row is dropped before classification.
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Sentiments[domain.SentimentPositive].Count)
	assert.Equal(t, 1, result.Sentiments[domain.SentimentNegative].Count)
	assert.Equal(t, 1, result.Sentiments[domain.SentimentNeutral].Count)

	require.Len(t, result.Samples, 3)
	assert.Equal(t, 0, result.Samples[0].Index)
	assert.Nil(t, result.Validation)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	data := []byte("text\nI love it\nI hate it\nfine I guess\n")

	first, err := analyzer.Analyze(context.Background(), Request{Filename: "r.csv", Data: data})
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), Request{Filename: "r.csv", Data: data})
	require.NoError(t, err)

	assert.Equal(t, first.Sentiments, second.Sentiments)
	assert.Equal(t, first.Samples, second.Samples)
	assert.Equal(t, first.AvgConfidence, second.AvgConfidence)
	assert.NotEqual(t, first.AnalysisID, second.AnalysisID)
}

func TestAnalyzeNoTextColumn(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	_, err := analyzer.Analyze(context.Background(), Request{
		Filename: "r.csv",
		Data:     []byte("id,amount\n1,10\n"),
	})

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeNoTextColumn, appErr.Type)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	tests := []struct {
		name string
		data string
	}{
		{"header only", "text\n"},
		{"all rows empty after cleaning", "text\n\"  \"\nNaN\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Analyze(context.Background(), Request{
				Filename: "r.csv",
				Data:     []byte(tt.data),
			})

			var appErr *apierrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apierrors.ErrTypeEmptyInput, appErr.Type)
		})
	}
}

func TestAnalyzeUnparseableFile(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	_, err := analyzer.Analyze(context.Background(), Request{
		Filename: "r.xlsx",
		Data:     []byte("not a workbook"),
	})

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeFormat, appErr.Type)
}

func TestAnalyzeWithValidation(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	data := []byte("text,rating\nI love it,5\nI hate it,1\nit works,3\n")

	result, err := analyzer.Analyze(context.Background(), Request{
		Filename: "r.csv",
		Data:     data,
		Validate: true,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Validation)
	assert.Equal(t, "rating", result.Validation.Column)
	assert.Equal(t, 3, result.Validation.Samples)
	assert.InDelta(t, 1.0, result.Validation.Accuracy, 1e-9)
}

func TestAnalyzeValidationNotRequested(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	data := []byte("text,rating\nI love it,5\n")

	result, err := analyzer.Analyze(context.Background(), Request{
		Filename: "r.csv",
		Data:     data,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Validation)
}

func TestAnalyzeTranslatedFlag(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	result, err := analyzer.Analyze(context.Background(), Request{
		Filename:  "r.csv",
		Data:      []byte("text\nI love this\n"),
		Translate: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Translated)
	assert.Equal(t, 1, result.Total)
}
