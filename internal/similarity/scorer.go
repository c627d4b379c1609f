// Package similarity scores how alike two strings are on a 0-100 scale.
//
// Scores are edit-distance based: Ratio is the Indel-normalized similarity of the
// full strings, and PartialRatio is the best Ratio of the shorter string against any
// window of the longer one. Callers are expected to normalize case before scoring.
package similarity

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/unicode/norm"
)

// MaxScore is the score of two identical strings.
const MaxScore = 100

// Scorer computes normalized similarity scores.
type Scorer interface {
	Ratio(a, b string) int
	PartialRatio(query, target string) int
	// RatioAbove compares the unrounded Ratio against threshold.
	RatioAbove(a, b string, threshold int) bool
}

// Indel is the default Scorer, based on insertion/deletion distance.
type Indel struct{}

// Ratio implements Scorer.
func (Indel) Ratio(a, b string) int { return Ratio(a, b) }

// PartialRatio implements Scorer.
func (Indel) PartialRatio(query, target string) int { return PartialRatio(query, target) }

// RatioAbove implements Scorer.
func (Indel) RatioAbove(a, b string, threshold int) bool { return RatioAbove(a, b, threshold) }

// Normalize composes s into NFC form and lower-cases it, so that visually
// identical names compare equal regardless of how they were typed.
func Normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Ratio returns round(100 * 2*LCS(a,b) / (len(a)+len(b))), counting runes.
// Two empty strings score MaxScore; one empty string scores 0.
func Ratio(a, b string) int {
	matched, total := indel(a, b)
	return int(math.Round(float64(2*MaxScore*matched) / float64(total)))
}

// RatioAbove reports whether the exact Ratio of a and b, before rounding, is
// strictly greater than threshold. 90.48 is above 90 even though Ratio is 90.
func RatioAbove(a, b string, threshold int) bool {
	matched, total := indel(a, b)
	return 2*MaxScore*matched > threshold*total
}

// indel returns the matched rune count and the combined length such that
// 2*MaxScore*matched/total is the similarity of a and b.
func indel(a, b string) (matched, total int) {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	switch {
	case la == 0 && lb == 0:
		return 1, 2
	case la == 0 || lb == 0:
		return 0, la + lb
	case a == b:
		return la, la + lb
	}
	return edlib.LCS(a, b), la + lb
}

// PartialRatio returns the best Ratio between the shorter operand and every
// window of the longer operand with the shorter one's length, including the
// truncated windows hanging off either edge.
func PartialRatio(query, target string) int {
	short, long := []rune(query), []rune(target)
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == 0 {
		if len(long) == 0 {
			return MaxScore
		}
		return 0
	}

	needle := string(short)
	m, n := len(short), len(long)
	best := 0

	score := func(window []rune) bool {
		if r := Ratio(needle, string(window)); r > best {
			best = r
		}
		return best == MaxScore
	}

	for i := 0; i+m <= n; i++ {
		if score(long[i : i+m]) {
			return best
		}
	}
	for i := 1; i < m; i++ {
		if score(long[:i]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if score(long[i:]) {
			return best
		}
	}

	return best
}
