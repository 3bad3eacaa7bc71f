package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "sentimeter/internal/errors"
)

func TestResolveTextColumn(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{
			name:   "single accepted column",
			header: []string{"id", "feedback", "date"},
			want:   "feedback",
		},
		{
			name:   "priority order beats file order",
			header: []string{"comment", "text"},
			want:   "text",
		},
		{
			name:   "case insensitive keeps original spelling",
			header: []string{"ID", "Review"},
			want:   "Review",
		},
		{
			name:   "review outranks message",
			header: []string{"message", "review"},
			want:   "review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTextColumn(tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTextColumnNotFound(t *testing.T) {
	_, err := ResolveTextColumn([]string{"id", "date", "amount"})

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeNoTextColumn, appErr.Type)
	assert.Contains(t, appErr.Context, "accepted_columns")
}

func TestResolveGroundTruthColumn(t *testing.T) {
	col, ok := ResolveGroundTruthColumn([]string{"text", "Sentiment", "date"})
	require.True(t, ok)
	assert.Equal(t, "Sentiment", col)

	_, ok = ResolveGroundTruthColumn([]string{"text", "date"})
	assert.False(t, ok)
}
