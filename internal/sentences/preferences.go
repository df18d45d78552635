package sentences

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"dictate/internal/models"
)

const (
	PrefKeySound        = "keySound"
	PrefCompletionSound = "completionSound"
)

// ParsePreferences reads a stored preferences document. Missing or
// wrong-typed fields keep their default of true.
func ParsePreferences(data []byte) models.Preferences {
	prefs := models.DefaultPreferences()
	if !gjson.ValidBytes(data) {
		return prefs
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return prefs
	}
	if v := doc.Get(PrefKeySound); v.IsBool() {
		prefs.KeySound = v.Bool()
	}
	if v := doc.Get(PrefCompletionSound); v.IsBool() {
		prefs.CompletionSound = v.Bool()
	}
	return prefs
}

// MarshalPreferences encodes preferences for storage
func MarshalPreferences(prefs models.Preferences) ([]byte, error) {
	return json.Marshal(prefs)
}

// SetPreference patches a single toggle in a stored document. Unknown or
// unusable documents are replaced by the defaults before patching, so
// unrelated keys written by other clients survive.
func SetPreference(data []byte, key string, value bool) ([]byte, error) {
	if key != PrefKeySound && key != PrefCompletionSound {
		return nil, fmt.Errorf("unknown preference %q", key)
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		defaults, err := MarshalPreferences(models.DefaultPreferences())
		if err != nil {
			return nil, err
		}
		data = defaults
	}

	patched, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return patched, nil
}
