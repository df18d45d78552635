package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fox = "The quick brown fox jumps over the lazy dog."

func statuses(r Result) []Status {
	out := make([]Status, len(r.Words))
	for i, w := range r.Words {
		out[i] = w.Status
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "only whitespace", input: " \t\n ", want: []string{}},
		{name: "single word", input: "hello", want: []string{"hello"}},
		{name: "whitespace runs", input: "  a \t b\n\nc  ", want: []string{"a", "b", "c"}},
		{name: "punctuation stays attached", input: "dog. cat,", want: []string{"dog.", "cat,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"a", "a"},
		{"  a   b  ", "a b"},
		{"a\tb\nc", "a b c"},
		{"Case Stays", "Case Stays"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestComputePrefixHasNoMismatch(t *testing.T) {
	words := Tokenize(fox)
	for n := 0; n <= len(words); n++ {
		typed := strings.Join(words[:n], " ")
		r := Compute(fox, typed)

		require.Nil(t, r.Mismatch, "prefix %q", typed)
		require.Len(t, r.Words, len(words))
		for i, w := range r.Words {
			if i < n {
				assert.Equal(t, StatusCorrect, w.Status, "word %d of prefix %q", i, typed)
			} else {
				assert.Equal(t, StatusUpcoming, w.Status, "word %d of prefix %q", i, typed)
			}
		}
		assert.Equal(t, n, r.Correct())
		assert.Equal(t, n == len(words), r.Complete)
	}
}

func TestComputeExactInputCompletes(t *testing.T) {
	r := Compute(fox, fox)

	assert.True(t, r.Complete)
	assert.Nil(t, r.Mismatch)
	for _, w := range r.Words {
		assert.Equal(t, StatusCorrect, w.Status)
	}
}

func TestComputeIrregularSpacingCompletes(t *testing.T) {
	r := Compute(fox, "The  quick brown fox jumps over the lazy dog.  ")

	assert.True(t, r.Complete)
	assert.Nil(t, r.Mismatch)
	assert.Equal(t, len(r.Words), r.Correct())
}

func TestComputeFirstDivergence(t *testing.T) {
	target := "Please open the window before the rain starts."
	r := Compute(target, "Please open teh window")

	want := []Status{
		StatusCorrect, StatusCorrect, StatusError,
		StatusUpcoming, StatusUpcoming, StatusUpcoming, StatusUpcoming, StatusUpcoming,
	}
	assert.Equal(t, want, statuses(r))

	require.NotNil(t, r.Mismatch)
	assert.Equal(t, "the", r.Mismatch.Expected)
	assert.Equal(t, "teh", r.Mismatch.Typed)
	assert.False(t, r.Mismatch.Extra())
	assert.False(t, r.Complete)
}

func TestComputeExtraWord(t *testing.T) {
	r := Compute("a b", "a b c")

	assert.Equal(t, []Status{StatusCorrect, StatusCorrect}, statuses(r))
	require.NotNil(t, r.Mismatch)
	assert.Equal(t, "", r.Mismatch.Expected)
	assert.Equal(t, "c", r.Mismatch.Typed)
	assert.True(t, r.Mismatch.Extra())
	assert.False(t, r.Mismatch.NearMiss())
	assert.False(t, r.Complete)
}

func TestComputeShortInputIsUpcomingNotError(t *testing.T) {
	r := Compute("one two three", "one")

	assert.Equal(t, []Status{StatusCorrect, StatusUpcoming, StatusUpcoming}, statuses(r))
	assert.Nil(t, r.Mismatch)
}

func TestComputeIsCaseSensitive(t *testing.T) {
	r := Compute("The dog", "the dog")

	assert.Equal(t, []Status{StatusError, StatusUpcoming}, statuses(r))
	require.NotNil(t, r.Mismatch)
	assert.Equal(t, "The", r.Mismatch.Expected)
	assert.False(t, r.Complete)
}

func TestComputeEdgeInputs(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		typed        string
		wantWords    int
		wantComplete bool
		wantMismatch bool
	}{
		{name: "both empty", target: "", typed: "", wantWords: 0},
		{name: "whitespace target", target: "   ", typed: "   ", wantWords: 0},
		{name: "empty target with input", target: "", typed: "hello", wantWords: 0, wantMismatch: true},
		{name: "whitespace input", target: "hi there", typed: "  \t ", wantWords: 2},
		{name: "leading whitespace input", target: "hi there", typed: "  hi there", wantWords: 2, wantComplete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.target, tt.typed)
			assert.Len(t, r.Words, tt.wantWords)
			assert.Equal(t, tt.wantComplete, r.Complete)
			assert.Equal(t, tt.wantMismatch, r.Mismatch != nil)
		})
	}
}

func TestMismatchNearMiss(t *testing.T) {
	near := Compute("open the window", "open the windw")
	require.NotNil(t, near.Mismatch)
	assert.True(t, near.Mismatch.NearMiss())

	far := Compute("open the window", "open the zebra")
	require.NotNil(t, far.Mismatch)
	assert.False(t, far.Mismatch.NearMiss())
}
