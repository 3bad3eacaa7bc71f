package translate

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"sentimeter/internal/errors"
)

// GoogleTranslator implements Capability using the Google Cloud Translation
// API. The service detects the source language itself; only the target is
// pinned to English.
type GoogleTranslator struct {
	service *translate.Service
}

// NewGoogleTranslator creates a translator authenticated with an API key.
func NewGoogleTranslator(ctx context.Context, apiKey string) (*GoogleTranslator, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("translation API key is empty", nil)
	}

	service, err := translate.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create translate service: %w", err)
	}

	return &GoogleTranslator{service: service}, nil
}

// DetectAndTranslate translates text to English.
func (g *GoogleTranslator) DetectAndTranslate(ctx context.Context, text string) (string, error) {
	resp, err := g.service.Translations.List([]string{text}, "en").
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("translate call failed: %w", err)
	}

	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("translate call returned no translations")
	}

	return resp.Translations[0].TranslatedText, nil
}
