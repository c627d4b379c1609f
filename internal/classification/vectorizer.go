package classification

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
// Punctuation and whitespace separate tokens, so "john@company.com" yields
// john, company and com.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text and splits it into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// CountVectorizer maps documents to bag-of-words count vectors over a
// vocabulary frozen at Fit time.
type CountVectorizer struct {
	vocabulary map[string]int
}

// NewCountVectorizer creates an empty vectorizer.
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{vocabulary: make(map[string]int)}
}

// Fit builds the vocabulary from docs. Feature indices follow first appearance.
func (v *CountVectorizer) Fit(docs []string) {
	v.vocabulary = make(map[string]int)
	for _, doc := range docs {
		for _, token := range Tokenize(doc) {
			if _, ok := v.vocabulary[token]; !ok {
				v.vocabulary[token] = len(v.vocabulary)
			}
		}
	}
}

// Transform returns the count vector of doc, indexed by feature.
// Tokens outside the vocabulary are dropped.
func (v *CountVectorizer) Transform(doc string) []int {
	counts := make([]int, len(v.vocabulary))
	for _, token := range Tokenize(doc) {
		if idx, ok := v.vocabulary[token]; ok {
			counts[idx]++
		}
	}
	return counts
}

// Size returns the vocabulary size.
func (v *CountVectorizer) Size() int {
	return len(v.vocabulary)
}

// Has reports whether token is part of the vocabulary.
func (v *CountVectorizer) Has(token string) bool {
	_, ok := v.vocabulary[token]
	return ok
}
