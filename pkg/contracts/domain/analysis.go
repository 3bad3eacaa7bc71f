package domain

import "time"

// CleanedRow is a single usable feedback row after column projection and
// normalization. Index preserves the row's position in the uploaded file so
// results can be traced back to the source.
type CleanedRow struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ClassifiedRow is a CleanedRow plus the model's verdict.
type ClassifiedRow struct {
	Index      int       `json:"index"`
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// LabelStats holds the aggregate numbers for one sentiment label.
type LabelStats struct {
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// SentimentSummary maps each label to its aggregate statistics. All three
// labels are always present, with zero-valued stats for empty classes.
type SentimentSummary map[Sentiment]LabelStats

// ValidationReport compares model predictions against a ground-truth column
// found in the uploaded file. Only produced when such a column exists.
type ValidationReport struct {
	Column            string                `json:"column"`
	Samples           int                   `json:"samples"`
	Correct           int                   `json:"correct"`
	Accuracy          float64               `json:"accuracy"`
	Precision         float64               `json:"precision"`
	Recall            float64               `json:"recall"`
	F1Score           float64               `json:"f1_score"`
	HighConfidence    int                   `json:"high_confidence"`
	PerClass          map[Sentiment]float64 `json:"per_class_accuracy"`
	ConfusionMatrix   [][]int               `json:"confusion_matrix"`
	CorrectConfidence float64               `json:"correct_confidence"`
	ErrorConfidence   float64               `json:"error_confidence"`
	Misclassified     []MisclassifiedRow    `json:"misclassified,omitempty"`
}

// MisclassifiedRow is one prediction that disagreed with the ground truth.
type MisclassifiedRow struct {
	Index      int       `json:"index"`
	Text       string    `json:"text"`
	Expected   Sentiment `json:"expected"`
	Predicted  Sentiment `json:"predicted"`
	Confidence float64   `json:"confidence"`
}

// AnalysisResult is the complete, immutable response for one analysis
// request. Nothing in it is persisted by the pipeline; any history storage
// belongs to the caller.
type AnalysisResult struct {
	AnalysisID    string            `json:"analysis_id"`
	Total         int               `json:"total"`
	Sentiments    SentimentSummary  `json:"sentiments"`
	Samples       []ClassifiedRow   `json:"samples"`
	TextColumn    string            `json:"text_column"`
	Translated    bool              `json:"translated"`
	AvgConfidence float64           `json:"avg_confidence"`
	Validation    *ValidationReport `json:"validation,omitempty"`
	Duration      time.Duration     `json:"duration_ms"`
	GeneratedAt   time.Time         `json:"generated_at"`
}
