package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sentimeter/pkg/contracts/domain"
)

// RemoteModel implements Capability against an HTTP model server exposing a
// HuggingFace-style text-classification endpoint: a JSON batch request in,
// one list of {label, score} pairs per input text out.
type RemoteModel struct {
	endpoint string
	apiToken string
	client   *http.Client
}

// NewRemoteModel creates a client for the given inference endpoint.
func NewRemoteModel(endpoint, apiToken string, timeout time.Duration) *RemoteModel {
	return &RemoteModel{
		endpoint: endpoint,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
	}
}

// inferenceRequest is the batch request body.
type inferenceRequest struct {
	Inputs []string `json:"inputs"`
}

// labelScore is one class probability in the model response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify scores one chunk of texts. The response must contain exactly one
// distribution per input, in input order.
func (m *RemoteModel) Classify(ctx context.Context, batch []string) ([]domain.Scores, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: batch})
	if err != nil {
		return nil, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiToken)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("inference server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var raw [][]labelScore
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(raw) != len(batch) {
		return nil, fmt.Errorf("inference server returned %d results for %d inputs", len(raw), len(batch))
	}

	scores := make([]domain.Scores, len(raw))
	for i, classes := range raw {
		dist, err := toScores(classes)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		scores[i] = dist
	}

	return scores, nil
}

// rawLabelMap normalizes the label spellings different model exports use.
var rawLabelMap = map[string]domain.Sentiment{
	"label_0":  domain.SentimentNegative,
	"label_1":  domain.SentimentNeutral,
	"label_2":  domain.SentimentPositive,
	"negative": domain.SentimentNegative,
	"neutral":  domain.SentimentNeutral,
	"positive": domain.SentimentPositive,
}

// toScores folds the model's per-class list into a Scores distribution.
func toScores(classes []labelScore) (domain.Scores, error) {
	var scores domain.Scores
	for _, class := range classes {
		label, ok := rawLabelMap[strings.ToLower(class.Label)]
		if !ok {
			return domain.Scores{}, fmt.Errorf("unknown model label %q", class.Label)
		}
		switch label {
		case domain.SentimentPositive:
			scores.Positive = class.Score
		case domain.SentimentNeutral:
			scores.Neutral = class.Score
		case domain.SentimentNegative:
			scores.Negative = class.Score
		}
	}
	return scores, nil
}
