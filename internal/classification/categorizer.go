// Package classification assigns a category label to a contact.
//
// The default Categorizer is a multinomial Naive Bayes model trained once, at
// construction, on a small fixed set of labeled (name, email) pairs. New
// contacts never feed back into training.
package classification

import (
	"fmt"
	"sort"
)

// Category labels present in the default training set.
const (
	LabelWork   = "Work"
	LabelFamily = "Family"
	LabelClient = "Client"
)

// Categorizer assigns one label from a closed set to a contact.
type Categorizer interface {
	// Predict returns the label for the given name and email.
	Predict(name, email string) string
	// Labels returns the closed label set, sorted.
	Labels() []string
}

// Example is one labeled training example.
type Example struct {
	Name  string
	Email string
	Label string
}

// Document is the text the vectorizer sees for a contact.
func Document(name, email string) string {
	return name + " " + email
}

// DefaultTrainingSet returns the fixed examples the default categorizer is trained on.
func DefaultTrainingSet() []Example {
	return []Example{
		{Name: "John Smith", Email: "john@company.com", Label: LabelWork},
		{Name: "Mom", Email: "mom@gmail.com", Label: LabelFamily},
		{Name: "Dr. Patel", Email: "patel@hospital.org", Label: LabelWork},
		{Name: "James HR", Email: "hr@work.com", Label: LabelWork},
		{Name: "Sis", Email: "sis@yahoo.com", Label: LabelFamily},
		{Name: "Client XYZ", Email: "client@business.com", Label: LabelClient},
	}
}

// New trains the default Naive Bayes categorizer on DefaultTrainingSet.
func New() *NaiveBayes {
	nb, err := Train(DefaultTrainingSet(), DefaultAlpha)
	if err != nil {
		// The default training set is static and valid.
		panic(fmt.Sprintf("classification: default training set rejected: %v", err))
	}
	return nb
}

func labelSet(examples []Example) []string {
	seen := make(map[string]struct{}, len(examples))
	for _, ex := range examples {
		seen[ex.Label] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
