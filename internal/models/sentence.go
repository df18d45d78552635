package models

// Sentence is one entry of the practice library
type Sentence struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Preferences holds the per-user sound toggles
type Preferences struct {
	KeySound        bool `json:"keySound"`
	CompletionSound bool `json:"completionSound"`
}

// DefaultPreferences returns preferences with every sound enabled
func DefaultPreferences() Preferences {
	return Preferences{
		KeySound:        true,
		CompletionSound: true,
	}
}

// PracticeState is a snapshot of the session for the API
type PracticeState struct {
	Sentences   []Sentence  `json:"sentences"`
	Index       int         `json:"index"`
	Current     *Sentence   `json:"current"`
	Preferences Preferences `json:"preferences"`
	Stats       Stats       `json:"stats"`
}

// Stats counts what happened since the process started
type Stats struct {
	Checks    int `json:"checks"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
}
