package translate

import (
	"context"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"

	"sentimeter/internal/config"
	"sentimeter/pkg/contracts/domain"
)

// Capability is the external translation service consumed by the adapter.
// Implementations translate the given text to English; any error is treated
// by the adapter as "keep the original text".
type Capability interface {
	DetectAndTranslate(ctx context.Context, text string) (string, error)
}

// Adapter wraps a translation capability with a language-detection
// short-circuit and a failure-tolerant passthrough. Row identity and row
// count are never altered; only the text changes, and only when the
// capability succeeds on a non-English row.
type Adapter struct {
	capability Capability
	logger     *slog.Logger
	timeout    time.Duration
}

// NewAdapter creates a translator adapter. A nil capability yields a pure
// passthrough adapter.
func NewAdapter(capability Capability, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		capability: capability,
		logger:     logger.With(slog.String("component", "translator")),
		timeout:    config.TranslateTimeout,
	}
}

// TranslateRows returns a new slice with the same indices and count as rows,
// with non-English texts replaced by their translation where possible.
// Translation failure is row-local: the affected row keeps its original text
// and the batch continues.
func (a *Adapter) TranslateRows(ctx context.Context, rows []domain.CleanedRow) []domain.CleanedRow {
	out := make([]domain.CleanedRow, len(rows))
	copy(out, rows)

	if a.capability == nil {
		return out
	}

	translated := 0
	for i := range out {
		text, ok := a.translateOne(ctx, out[i].Text)
		if ok {
			out[i].Text = text
			translated++
		}
	}

	if translated > 0 {
		a.logger.InfoContext(ctx, "translated rows",
			slog.Int("translated", translated),
			slog.Int("total", len(out)))
	}

	return out
}

// translateOne translates a single text, reporting whether the text changed.
func (a *Adapter) translateOne(ctx context.Context, text string) (string, bool) {
	// Too short for reliable language detection.
	if len([]rune(text)) < config.MinTranslateLength {
		return text, false
	}

	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Eng {
		return text, false
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	translated, err := a.capability.DetectAndTranslate(callCtx, text)
	if err != nil {
		// Row-local fallback: keep the original text.
		a.logger.WarnContext(ctx, "translation failed, keeping original text",
			slog.String("detected_lang", info.Lang.String()),
			slog.String("error", err.Error()))
		return text, false
	}
	if translated == "" {
		return text, false
	}

	return translated, true
}
