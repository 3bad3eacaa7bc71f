package config

import "time"

// Application constants - pinned values for the sentiment pipeline. These are
// deliberately not user-configurable: they bound worst-case classifier memory
// and keep results reproducible across runs.
const (
	// Application Info
	AppName    = "Sentimeter"
	AppVersion = "1.2.0"

	// Text Normalization
	// MaxTextLength caps each row's text in runes before classification.
	// Matches the model's maximum sequence length.
	MaxTextLength = 512

	// Classification
	// BatchSize is the fixed chunk size for model inference. Bounds peak
	// memory independent of total row count.
	BatchSize = 16
	// NeutralThreshold relabels low-confidence predictions to NEUTRAL.
	NeutralThreshold = 0.55
	// HighConfidenceThreshold marks predictions reported as high confidence
	// in validation statistics.
	HighConfidenceThreshold = 0.70

	// Aggregation
	// SampleLimit bounds the number of per-row results echoed back to the
	// caller. Sampling is a deterministic prefix in original file order.
	SampleLimit = 50
	// MisclassifiedLimit bounds the misclassified examples in a
	// validation report.
	MisclassifiedLimit = 10
	// PercentPrecision is the decimal precision for percentages.
	PercentPrecision = 1
	// ConfidencePrecision is the decimal precision for confidence values.
	ConfidencePrecision = 4

	// Ingestion
	// MaxRows is the request-level input limit enforced at parse time.
	MaxRows = 50000

	// Translation
	// MinTranslateLength skips translation for texts too short for
	// reliable language detection.
	MinTranslateLength = 3
	// TranslateTimeout bounds one translation call.
	TranslateTimeout = 30 * time.Second

	// Rate Limiting
	DefaultRateLimit = 10 // requests per second
	DefaultBurstSize = 20
)

// AcceptedTextColumns is the ordered priority list for text column
// resolution. When a header contains several accepted names, the one
// earliest in this list wins, regardless of header order.
var AcceptedTextColumns = []string{
	"text", "review", "comment", "feedback", "message", "content",
}

// GroundTruthColumns lists header names recognized as carrying ground-truth
// sentiment labels, checked in order.
var GroundTruthColumns = []string{
	"sentiment", "label", "score", "rating",
	"true_sentiment", "ground_truth", "actual",
}
