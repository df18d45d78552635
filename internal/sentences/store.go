package sentences

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"dictate/internal/models"
)

// Store owns the ordered sentence collection and the current index.
//
// The index is always within [0, Len()-1] when the collection is non-empty
// and 0 when it is empty. Store is not safe for concurrent use; the caller
// serializes access.
type Store struct {
	sentences []models.Sentence
	index     int
}

// NewStore creates a store over sentences with the given index clamped
func NewStore(sentences []models.Sentence, index int) *Store {
	s := &Store{sentences: slices.Clone(sentences)}
	s.SetCurrentIndex(index)
	return s
}

// Sentences returns a copy of the collection in practice order
func (s *Store) Sentences() []models.Sentence {
	return slices.Clone(s.sentences)
}

// Len returns the number of sentences
func (s *Store) Len() int {
	return len(s.sentences)
}

// Index returns the current index
func (s *Store) Index() int {
	return s.index
}

// Current returns the sentence being practiced, if any
func (s *Store) Current() (models.Sentence, bool) {
	if len(s.sentences) == 0 {
		return models.Sentence{}, false
	}
	return s.sentences[s.index], true
}

// Add appends a new sentence with a generated id
func (s *Store) Add(text string) (models.Sentence, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Sentence{}, ErrEmptyText
	}

	sentence := models.Sentence{ID: s.uniqueID(), Text: text}
	s.sentences = append(s.sentences, sentence)
	return sentence, nil
}

// Edit replaces the text of the sentence with the given id
func (s *Store) Edit(id, text string) (models.Sentence, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Sentence{}, ErrEmptyText
	}

	i := s.position(id)
	if i < 0 {
		return models.Sentence{}, ErrNotFound
	}
	s.sentences[i].Text = text
	return s.sentences[i], nil
}

// Delete removes the sentence with the given id and clamps the index
func (s *Store) Delete(id string) error {
	i := s.position(id)
	if i < 0 {
		return ErrNotFound
	}
	s.sentences = slices.Delete(s.sentences, i, i+1)
	s.ClampToLength()
	return nil
}

// Replace swaps in a whole new collection, as an import does, and resets
// the index to the first sentence
func (s *Store) Replace(sentences []models.Sentence) {
	s.sentences = slices.Clone(sentences)
	s.index = 0
}

// SetCurrentIndex moves to position i, clamped to the collection
func (s *Store) SetCurrentIndex(i int) {
	s.index = clamp(i, len(s.sentences))
}

// ClampToLength restores the index invariant after the collection shrank
func (s *Store) ClampToLength() {
	if s.index >= len(s.sentences) {
		s.index = len(s.sentences) - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

// Select makes the sentence with the given id current
func (s *Store) Select(id string) error {
	i := s.position(id)
	if i < 0 {
		return ErrNotFound
	}
	s.index = i
	return nil
}

// Advance moves to the next sentence, wrapping to the first after the last
func (s *Store) Advance() int {
	if len(s.sentences) == 0 {
		s.index = 0
		return 0
	}
	s.index = (s.index + 1) % len(s.sentences)
	return s.index
}

// Previous moves to the previous sentence, wrapping to the last
func (s *Store) Previous() int {
	if len(s.sentences) == 0 {
		s.index = 0
		return 0
	}
	s.index = (s.index - 1 + len(s.sentences)) % len(s.sentences)
	return s.index
}

func (s *Store) position(id string) int {
	_, i, ok := lo.FindIndexOf(s.sentences, func(item models.Sentence) bool {
		return item.ID == id
	})
	if !ok {
		return -1
	}
	return i
}

func (s *Store) uniqueID() string {
	for {
		id := NewID()
		if s.position(id) < 0 {
			return id
		}
	}
}
