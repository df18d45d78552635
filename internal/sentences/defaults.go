package sentences

import "dictate/internal/models"

var defaultSentences = []models.Sentence{
	{ID: "default-1", Text: "The quick brown fox jumps over the lazy dog."},
	{ID: "default-2", Text: "Please open the window before the rain starts."},
	{ID: "default-3", Text: "I would like a cup of coffee with milk."},
	{ID: "default-4", Text: "She has been learning English for three years."},
	{ID: "default-5", Text: "Could you tell me the way to the station?"},
	{ID: "default-6", Text: "We are going to visit our friends this weekend."},
	{ID: "default-7", Text: "It is never too late to learn something new."},
}

// DefaultSentences returns the built-in library used when nothing is stored
func DefaultSentences() []models.Sentence {
	out := make([]models.Sentence, len(defaultSentences))
	copy(out, defaultSentences)
	return out
}
