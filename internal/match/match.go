// Package match compares a dictated sentence against the text typed so far.
//
// Feedback is computed word by word with a single left-to-right scan. The
// first differing word is the only error; every word after it is reported as
// upcoming, even if later typed words happen to line up again. Completion is a
// separate whole-string comparison over whitespace-normalized text.
package match

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Status is the feedback state of one target word
type Status string

const (
	StatusCorrect  Status = "correct"
	StatusError    Status = "error"
	StatusUpcoming Status = "upcoming"
)

// nearMissThreshold is the Jaro-Winkler score above which a wrong word is
// reported as a likely typo.
const nearMissThreshold = 0.85

// WordState pairs a target word with its status
type WordState struct {
	Word   string `json:"word"`
	Status Status `json:"status"`
}

// Mismatch describes the first divergence. Expected is empty when the
// learner typed more words than the sentence has.
type Mismatch struct {
	Expected   string  `json:"expected"`
	Typed      string  `json:"typed"`
	Similarity float64 `json:"similarity"`
}

// Extra reports whether the mismatch is surplus input past the last word
func (m Mismatch) Extra() bool {
	return m.Expected == ""
}

// NearMiss reports whether the typed word is close to the expected one
func (m Mismatch) NearMiss() bool {
	return !m.Extra() && m.Similarity >= nearMissThreshold
}

// Result is the full feedback for one (target, typed) pair
type Result struct {
	Words    []WordState `json:"words"`
	Mismatch *Mismatch   `json:"mismatch"`
	Complete bool        `json:"complete"`
}

// Correct returns how many leading words are correct
func (r Result) Correct() int {
	n := 0
	for _, w := range r.Words {
		if w.Status != StatusCorrect {
			break
		}
		n++
	}
	return n
}

// Tokenize splits s into words on runs of whitespace
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Normalize collapses whitespace runs to a single space and trims the ends
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Compute produces the per-word feedback and completion signal
func Compute(target, typed string) Result {
	targetWords := Tokenize(target)

	var typedWords []string
	if trimmed := strings.TrimSpace(typed); trimmed != "" {
		typedWords = Tokenize(trimmed)
	}

	result := Result{
		Words: make([]WordState, len(targetWords)),
	}

	mismatched := false
	for i, word := range targetWords {
		state := WordState{Word: word, Status: StatusUpcoming}
		switch {
		case mismatched:
		case i >= len(typedWords):
		case typedWords[i] == word:
			state.Status = StatusCorrect
		default:
			mismatched = true
			state.Status = StatusError
			result.Mismatch = newMismatch(word, typedWords[i])
		}
		result.Words[i] = state
	}

	if !mismatched && len(typedWords) > len(targetWords) {
		result.Mismatch = &Mismatch{Typed: typedWords[len(targetWords)]}
	}

	normalizedTarget := Normalize(target)
	result.Complete = normalizedTarget != "" && normalizedTarget == Normalize(typed)

	return result
}

func newMismatch(expected, typed string) *Mismatch {
	return &Mismatch{
		Expected:   expected,
		Typed:      typed,
		Similarity: matchr.JaroWinkler(expected, typed, false),
	}
}
