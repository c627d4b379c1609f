package classification

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultAlpha is the additive (Laplace) smoothing parameter.
const DefaultAlpha = 1.0

// ErrNoTrainingData is returned when Train is given nothing to learn from.
var ErrNoTrainingData = errors.New("no training data")

// NaiveBayes is a multinomial Naive Bayes Categorizer over token counts.
type NaiveBayes struct {
	vectorizer *CountVectorizer
	labels     []string
	logPrior   []float64
	// logLikelihood[c][f] is log P(feature f | label c).
	logLikelihood [][]float64
}

// Train fits a model on examples with additive smoothing alpha.
func Train(examples []Example, alpha float64) (*NaiveBayes, error) {
	if len(examples) == 0 {
		return nil, ErrNoTrainingData
	}
	if alpha <= 0 {
		return nil, fmt.Errorf("smoothing alpha must be positive, got %v", alpha)
	}
	for i, ex := range examples {
		if strings.TrimSpace(ex.Label) == "" {
			return nil, fmt.Errorf("example %d has no label", i)
		}
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = Document(ex.Name, ex.Email)
	}

	vectorizer := NewCountVectorizer()
	vectorizer.Fit(docs)

	labels := labelSet(examples)
	labelIndex := make(map[string]int, len(labels))
	for i, label := range labels {
		labelIndex[label] = i
	}

	nFeatures := vectorizer.Size()
	classCount := make([]float64, len(labels))
	featureCount := make([][]float64, len(labels))
	for c := range featureCount {
		featureCount[c] = make([]float64, nFeatures)
	}

	for i, ex := range examples {
		c := labelIndex[ex.Label]
		classCount[c]++
		for f, n := range vectorizer.Transform(docs[i]) {
			featureCount[c][f] += float64(n)
		}
	}

	model := &NaiveBayes{
		vectorizer:    vectorizer,
		labels:        labels,
		logPrior:      make([]float64, len(labels)),
		logLikelihood: make([][]float64, len(labels)),
	}

	total := float64(len(examples))
	for c := range labels {
		model.logPrior[c] = math.Log(classCount[c] / total)

		var tokens float64
		for _, n := range featureCount[c] {
			tokens += n
		}
		denominator := tokens + alpha*float64(nFeatures)

		model.logLikelihood[c] = make([]float64, nFeatures)
		for f := range featureCount[c] {
			model.logLikelihood[c][f] = math.Log((featureCount[c][f] + alpha) / denominator)
		}
	}

	return model, nil
}

// Predict implements Categorizer. Ties resolve to the alphabetically first label.
func (nb *NaiveBayes) Predict(name, email string) string {
	scores := nb.jointLogLikelihood(Document(name, email))

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return nb.labels[best]
}

// Labels implements Categorizer.
func (nb *NaiveBayes) Labels() []string {
	out := make([]string, len(nb.labels))
	copy(out, nb.labels)
	return out
}

func (nb *NaiveBayes) jointLogLikelihood(doc string) []float64 {
	features := nb.vectorizer.Transform(doc)

	scores := make([]float64, len(nb.labels))
	for c := range nb.labels {
		score := nb.logPrior[c]
		for f, n := range features {
			if n > 0 {
				score += float64(n) * nb.logLikelihood[c][f]
			}
		}
		scores[c] = score
	}
	return scores
}
