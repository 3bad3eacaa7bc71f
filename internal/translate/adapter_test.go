package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/pkg/contracts/domain"
)

// fakeTranslator records calls and either translates or fails.
type fakeTranslator struct {
	calls  int
	result string
	err    error
}

func (f *fakeTranslator) DetectAndTranslate(_ context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

const spanishReview = "Este producto es excelente y lo recomiendo a todos mis amigos"

func TestTranslateRowsTranslatesNonEnglish(t *testing.T) {
	capability := &fakeTranslator{result: "This product is excellent"}
	adapter := NewAdapter(capability, nil)

	rows := []domain.CleanedRow{{Index: 2, Text: spanishReview}}

	out := adapter.TranslateRows(context.Background(), rows)

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Index)
	assert.Equal(t, "This product is excellent", out[0].Text)
	assert.Equal(t, 1, capability.calls)
	// Input slice untouched.
	assert.Equal(t, spanishReview, rows[0].Text)
}

func TestTranslateRowsSkipsEnglish(t *testing.T) {
	capability := &fakeTranslator{result: "should never be used"}
	adapter := NewAdapter(capability, nil)

	rows := []domain.CleanedRow{
		{Index: 0, Text: "The delivery was fast and the packaging was great"},
	}

	out := adapter.TranslateRows(context.Background(), rows)

	assert.Equal(t, rows[0].Text, out[0].Text)
	assert.Zero(t, capability.calls)
}

func TestTranslateRowsSkipsShortText(t *testing.T) {
	capability := &fakeTranslator{result: "nope"}
	adapter := NewAdapter(capability, nil)

	out := adapter.TranslateRows(context.Background(), []domain.CleanedRow{{Text: "ok"}})

	assert.Equal(t, "ok", out[0].Text)
	assert.Zero(t, capability.calls)
}

func TestTranslateRowsFailureKeepsOriginal(t *testing.T) {
	capability := &fakeTranslator{err: errors.New("quota exceeded")}
	adapter := NewAdapter(capability, nil)

	rows := []domain.CleanedRow{
		{Index: 0, Text: spanishReview},
		{Index: 1, Text: "El servicio fue terrible y muy lento"},
	}

	out := adapter.TranslateRows(context.Background(), rows)

	// Failure is row-local: both rows survive with their original text.
	require.Len(t, out, 2)
	assert.Equal(t, rows[0].Text, out[0].Text)
	assert.Equal(t, rows[1].Text, out[1].Text)
	assert.Equal(t, 2, capability.calls)
}

func TestTranslateRowsNilCapabilityPassthrough(t *testing.T) {
	adapter := NewAdapter(nil, nil)

	rows := []domain.CleanedRow{{Index: 5, Text: spanishReview}}
	out := adapter.TranslateRows(context.Background(), rows)

	require.Len(t, out, 1)
	assert.Equal(t, rows[0], out[0])
}

func TestTranslateRowsEmptyTranslationKeepsOriginal(t *testing.T) {
	capability := &fakeTranslator{result: ""}
	adapter := NewAdapter(capability, nil)

	out := adapter.TranslateRows(context.Background(), []domain.CleanedRow{{Text: spanishReview}})

	assert.Equal(t, spanishReview, out[0].Text)
}
