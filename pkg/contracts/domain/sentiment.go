package domain

// Sentiment is one of the three classification labels produced by the
// sentiment model.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// SentimentOrder is the canonical label order. It doubles as the tie-break
// ranking: when two classes share the maximum probability, the label that
// appears earlier in this slice wins.
var SentimentOrder = []Sentiment{
	SentimentPositive,
	SentimentNeutral,
	SentimentNegative,
}

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Scores is a probability distribution over the three sentiment classes.
// Values are expected to be in [0,1]; the classifier does not require them
// to sum to exactly 1 (remote model servers round their output).
type Scores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Get returns the probability assigned to the given label.
func (sc Scores) Get(s Sentiment) float64 {
	switch s {
	case SentimentPositive:
		return sc.Positive
	case SentimentNeutral:
		return sc.Neutral
	case SentimentNegative:
		return sc.Negative
	}
	return 0
}

// Argmax returns the highest-probability label and its probability,
// breaking exact ties by SentimentOrder.
func (sc Scores) Argmax() (Sentiment, float64) {
	best := SentimentOrder[0]
	bestScore := sc.Get(best)
	for _, label := range SentimentOrder[1:] {
		if score := sc.Get(label); score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best, bestScore
}
