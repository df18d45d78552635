// Package audio provides the speech capability used to read sentences aloud.
package audio

import (
	"context"
	"log/slog"
	"os"
)

// Speaker turns text into a playable clip. Implementations are best effort;
// callers log failures and carry on.
type Speaker interface {
	// Speak returns the clip name for text, or "" when nothing was produced
	Speak(ctx context.Context, text string) (string, error)

	// Name identifies the implementation in logs
	Name() string
}

// NoopSpeaker is used when speech is unavailable
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(context.Context, string) (string, error) { return "", nil }

func (NoopSpeaker) Name() string { return "noop" }

// NewSpeaker detects whether speech can work and returns the matching
// implementation. Detection happens once; an unusable audio directory
// degrades to the no-op speaker for the rest of the process.
func NewSpeaker(enabled bool, audioDir, language string) Speaker {
	if !enabled {
		slog.Info("speech disabled by configuration")
		return NoopSpeaker{}
	}
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		slog.Warn("speech unavailable, audio directory not writable", "dir", audioDir, "error", err)
		return NoopSpeaker{}
	}
	return NewTTSService(audioDir, language)
}
