// Package challenge decides whether a player's free-text answer is close
// enough to a challenge's reference answer.
package challenge

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// coreMatchRatio is the share of the expected core words the attempt must cover.
const coreMatchRatio = 0.6

// minSubstringLen is the length the shorter string must exceed for the
// substring fallback to apply.
const minSubstringLen = 4

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "of": true, "in": true,
	"on": true, "at": true, "by": true, "for": true, "from": true, "with": true,
	"into": true, "onto": true, "and": true, "or": true, "it": true, "its": true,
	"is": true, "be": true, "i": true, "me": true, "my": true, "you": true,
	"your": true, "this": true, "that": true, "then": true, "use": true,
	"using": true, "will": true, "should": true, "try": true, "up": true,
}

// Longest first so "es" wins over "s".
var suffixes = []string{"type", "ing", "est", "es", "ed", "er", "ly", "s"}

// Match reports whether attempt approximately equals expected. It accepts an
// exact case-insensitive match, a core-word overlap of at least 60% of the
// expected words, or plain substring containment of sufficiently long text.
func Match(attempt, expected string) bool {
	a := fold(attempt)
	e := fold(expected)
	if e == "" {
		return false
	}
	if a == e {
		return true
	}

	if coreMatch(coreWords(a), coreWords(e)) {
		return true
	}

	shorter := min(len(a), len(e))
	return shorter > minSubstringLen && (strings.Contains(a, e) || strings.Contains(e, a))
}

// MatchAny tries each answer in order and returns the first one attempt matches.
func MatchAny(attempt string, answers []string) (string, bool) {
	for _, ans := range answers {
		if Match(attempt, ans) {
			return ans, true
		}
	}
	return "", false
}

func fold(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

func coreWords(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	var core []string
	for _, w := range words {
		w = strings.Trim(w, "-")
		if w == "" || stopWords[w] {
			continue
		}
		core = append(core, w)
	}
	return core
}

func coreMatch(attempt, expected []string) bool {
	if len(expected) == 0 || len(attempt) == 0 {
		return false
	}

	matched := 0
	for _, e := range expected {
		for _, a := range attempt {
			if wordsMatch(a, e) {
				matched++
				break
			}
		}
	}
	return float64(matched)/float64(len(expected)) >= coreMatchRatio
}

func wordsMatch(a, e string) bool {
	if a == e {
		return true
	}
	if len(a) > 3 && len(e) > 3 && (strings.Contains(a, e) || strings.Contains(e, a)) {
		return true
	}
	return stem(a) == stem(e)
}

// stem strips one known suffix, or a "-type" qualifier, leaving at least
// three characters.
func stem(w string) string {
	if base, ok := strings.CutSuffix(w, "-type"); ok && base != "" {
		return base
	}
	for _, suf := range suffixes {
		if base, ok := strings.CutSuffix(w, suf); ok && len(base) >= 3 {
			return base
		}
	}
	return w
}
