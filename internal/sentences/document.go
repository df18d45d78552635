package sentences

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"dictate/internal/models"
)

// Load sanitizes a persisted or imported sentence document.
//
// The document must be a JSON array. Elements that are objects with a string
// "text" field are kept with the text verbatim; anything else is dropped.
// An element keeps its "id" when it is a non-blank string not already used
// earlier in the same document, otherwise it gets a fresh one.
func Load(data []byte) ([]models.Sentence, error) {
	sentences, _, err := load(data)
	return sentences, err
}

// LoadForImport is Load with the extra rule for user imports: a non-empty
// array with zero surviving sentences is rejected, while an empty array is
// accepted as an intentional empty library.
func LoadForImport(data []byte) ([]models.Sentence, error) {
	sentences, raw, err := load(data)
	if err != nil {
		return nil, err
	}
	if raw > 0 && len(sentences) == 0 {
		return nil, fmt.Errorf("%w: %d entries dropped", ErrNoValidSentences, raw)
	}
	return sentences, nil
}

func load(data []byte) ([]models.Sentence, int, error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, 0, ErrInvalidDocument
	}

	elems := doc.Array()
	used := make(map[string]struct{}, len(elems))
	sentences := make([]models.Sentence, 0, len(elems))

	for _, elem := range elems {
		if !elem.IsObject() {
			continue
		}
		text := lastField(elem, "text")
		if text.Type != gjson.String {
			continue
		}

		id := ""
		if raw := lastField(elem, "id"); raw.Type == gjson.String && strings.TrimSpace(raw.Str) != "" {
			id = raw.Str
		}
		if _, taken := used[id]; id == "" || taken {
			id = freshID(used)
		}
		used[id] = struct{}{}

		sentences = append(sentences, models.Sentence{ID: id, Text: text.Str})
	}

	return sentences, len(elems), nil
}

// lastField returns the value of key in obj. A repeated key resolves to its
// last occurrence, the way browsers parse JSON.
func lastField(obj gjson.Result, key string) gjson.Result {
	var value gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			value = v
		}
		return true
	})
	return value
}

func freshID(used map[string]struct{}) string {
	for {
		id := NewID()
		if _, taken := used[id]; !taken {
			return id
		}
	}
}

// Save serializes sentences into the persisted document shape
func Save(sentences []models.Sentence) ([]byte, error) {
	data, err := json.Marshal(document(sentences))
	if err != nil {
		return nil, fmt.Errorf("failed to encode sentences: %w", err)
	}
	return data, nil
}

// Export serializes sentences like Save, indented by two spaces
func Export(sentences []models.Sentence) ([]byte, error) {
	data, err := json.MarshalIndent(document(sentences), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sentences: %w", err)
	}
	return data, nil
}

func document(sentences []models.Sentence) []models.Sentence {
	if sentences == nil {
		return []models.Sentence{}
	}
	return sentences
}
