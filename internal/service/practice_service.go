package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"dictate/internal/audio"
	"dictate/internal/match"
	"dictate/internal/models"
	"dictate/internal/repository"
	"dictate/internal/sentences"
)

// SettingsStore is the persistence the practice session writes through
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	SaveLibrary(ctx context.Context, document []byte, index string) error
}

// CheckResult is the outcome of matching one input against the current sentence
type CheckResult struct {
	Feedback  match.Result     `json:"feedback"`
	Completed bool             `json:"completed"`
	NextIndex int              `json:"nextIndex"`
	Next      *models.Sentence `json:"next,omitempty"`
	Clip      string           `json:"clip,omitempty"`
}

// Position is where the session stands after a navigation
type Position struct {
	Index   int              `json:"index"`
	Current *models.Sentence `json:"current"`
	Clip    string           `json:"clip,omitempty"`
}

// PracticeService holds the dictation session in memory and writes every
// change through to the settings store. State changes are serialized; speech
// runs after the lock is released.
type PracticeService struct {
	mu       sync.Mutex
	log      *slog.Logger
	settings SettingsStore
	speaker  audio.Speaker

	store    *sentences.Store
	prefsDoc []byte
	prefs    models.Preferences
	stats    models.Stats
}

// NewPracticeService creates a session over the default library; call
// Restore to load what was saved.
func NewPracticeService(log *slog.Logger, settings SettingsStore, speaker audio.Speaker) *PracticeService {
	return &PracticeService{
		log:      log.With("service", "practice"),
		settings: settings,
		speaker:  speaker,
		store:    sentences.NewStore(sentences.DefaultSentences(), 0),
		prefs:    models.DefaultPreferences(),
	}
}

// Restore loads the saved library, index and preferences. Missing or
// unreadable values fall back to defaults; only a failing store is an error.
func (s *PracticeService) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	library := sentences.DefaultSentences()
	raw, err := s.settings.GetSetting(ctx, repository.KeySentences)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.log.InfoContext(ctx, "no saved sentences, using defaults")
	case err != nil:
		return fmt.Errorf("restore sentences: %w", err)
	default:
		loaded, err := sentences.Load([]byte(raw))
		if err != nil {
			s.log.WarnContext(ctx, "saved sentences unreadable, using defaults", slog.Any("error", err))
		} else {
			library = loaded
		}
	}

	index := 0
	rawIndex, err := s.settings.GetSetting(ctx, repository.KeyCurrentIndex)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return fmt.Errorf("restore index: %w", err)
	default:
		index = sentences.ParseIndex(rawIndex, len(library))
	}
	s.store = sentences.NewStore(library, index)

	rawPrefs, err := s.settings.GetSetting(ctx, repository.KeyPreferences)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.prefsDoc = nil
	case err != nil:
		return fmt.Errorf("restore preferences: %w", err)
	default:
		s.prefsDoc = []byte(rawPrefs)
	}
	s.prefs = sentences.ParsePreferences(s.prefsDoc)

	s.log.InfoContext(ctx, "session restored",
		slog.Int("sentences", s.store.Len()),
		slog.Int("index", s.store.Index()),
		slog.String("speaker", s.speaker.Name()))
	return nil
}

// State returns a snapshot of the whole session
func (s *PracticeService) State() models.PracticeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.PracticeState{
		Sentences:   s.store.Sentences(),
		Index:       s.store.Index(),
		Current:     s.current(),
		Preferences: s.prefs,
		Stats:       s.stats,
	}
}

// Check matches typed against the current sentence. A completed sentence
// advances the session, wrapping past the end, and reads the next one aloud.
// Speech runs after the session is released so other events never wait on it.
func (s *PracticeService) Check(ctx context.Context, typed string) CheckResult {
	s.mu.Lock()
	result := s.check(ctx, typed)
	s.mu.Unlock()

	if result.Next != nil {
		result.Clip = s.speak(ctx, result.Next.Text)
	}
	return result
}

func (s *PracticeService) check(ctx context.Context, typed string) CheckResult {
	s.stats.Checks++

	var target string
	if current, ok := s.store.Current(); ok {
		target = current.Text
	}

	result := CheckResult{
		Feedback:  match.Compute(target, typed),
		NextIndex: s.store.Index(),
	}
	if !result.Feedback.Complete {
		return result
	}

	s.stats.Completed++
	result.Completed = true
	result.NextIndex = s.store.Advance()
	result.Next = s.current()
	s.persistIndex(ctx)
	return result
}

// AddSentence appends a sentence to the end of the library
func (s *PracticeService) AddSentence(ctx context.Context, text string) (models.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sentence, err := s.store.Add(text)
	if err != nil {
		return models.Sentence{}, err
	}
	s.persistLibrary(ctx)
	return sentence, nil
}

// EditSentence replaces the text of a sentence, keeping its id
func (s *PracticeService) EditSentence(ctx context.Context, id, text string) (models.Sentence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sentence, err := s.store.Edit(id, text)
	if err != nil {
		return models.Sentence{}, err
	}
	s.persistLibrary(ctx)
	return sentence, nil
}

// DeleteSentence removes a sentence and clamps the current index
func (s *PracticeService) DeleteSentence(ctx context.Context, id string) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(id); err != nil {
		return Position{}, err
	}
	s.persistLibrary(ctx)
	return s.position(), nil
}

// Select makes the sentence with the given id current and reads it aloud
func (s *PracticeService) Select(ctx context.Context, id string) (Position, error) {
	s.mu.Lock()
	if err := s.store.Select(id); err != nil {
		s.mu.Unlock()
		return Position{}, err
	}
	pos := s.moved(ctx)
	s.mu.Unlock()

	return s.announce(ctx, pos), nil
}

// Skip moves to the next sentence without completing the current one
func (s *PracticeService) Skip(ctx context.Context) Position {
	s.mu.Lock()
	s.stats.Skipped++
	s.store.Advance()
	pos := s.moved(ctx)
	s.mu.Unlock()

	return s.announce(ctx, pos)
}

// Previous moves back one sentence, wrapping to the last
func (s *PracticeService) Previous(ctx context.Context) Position {
	s.mu.Lock()
	s.store.Previous()
	pos := s.moved(ctx)
	s.mu.Unlock()

	return s.announce(ctx, pos)
}

// Replay reads the current sentence aloud again
func (s *PracticeService) Replay(ctx context.Context) Position {
	s.mu.Lock()
	pos := s.position()
	s.mu.Unlock()

	return s.announce(ctx, pos)
}

// Export renders the library as an indented document
func (s *PracticeService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sentences.Export(s.store.Sentences())
}

// Import replaces the library with a sanitized document and restarts from
// the first sentence. A rejected document leaves the session untouched.
func (s *PracticeService) Import(ctx context.Context, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	library, err := sentences.LoadForImport(data)
	if err != nil {
		return 0, err
	}

	s.store.Replace(library)
	s.persistLibrary(ctx)
	s.log.InfoContext(ctx, "sentences imported", slog.Int("count", len(library)))
	return len(library), nil
}

// Preferences returns the current sound toggles
func (s *PracticeService) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.prefs
}

// SetPreference changes one sound toggle and saves it
func (s *PracticeService) SetPreference(ctx context.Context, key string, value bool) (models.Preferences, error) {
	return s.UpdatePreferences(ctx, map[string]bool{key: value})
}

// UpdatePreferences applies several toggles as one change. An unknown key
// rejects the whole update and nothing is saved.
func (s *PracticeService) UpdatePreferences(ctx context.Context, changes map[string]bool) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(changes) == 0 {
		return s.prefs, fmt.Errorf("%w: no preferences given", ErrValidation)
	}

	keys := lo.Keys(changes)
	slices.Sort(keys)

	doc := s.prefsDoc
	for _, key := range keys {
		patched, err := sentences.SetPreference(doc, key, changes[key])
		if err != nil {
			return s.prefs, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		doc = patched
	}
	s.prefsDoc = doc
	s.prefs = sentences.ParsePreferences(doc)

	if err := s.settings.SetSetting(ctx, repository.KeyPreferences, string(doc)); err != nil {
		s.log.ErrorContext(ctx, "failed to save preferences", slog.Any("error", err))
	}
	return s.prefs, nil
}

// Stats returns the counters collected since the process started
func (s *PracticeService) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

func (s *PracticeService) current() *models.Sentence {
	current, ok := s.store.Current()
	if !ok {
		return nil
	}
	return &current
}

func (s *PracticeService) position() Position {
	return Position{Index: s.store.Index(), Current: s.current()}
}

func (s *PracticeService) moved(ctx context.Context) Position {
	s.persistIndex(ctx)
	return s.position()
}

// announce speaks the sentence at pos. It must be called without s.mu held.
func (s *PracticeService) announce(ctx context.Context, pos Position) Position {
	if pos.Current != nil {
		pos.Clip = s.speak(ctx, pos.Current.Text)
	}
	return pos
}

func (s *PracticeService) speak(ctx context.Context, text string) string {
	clip, err := s.speaker.Speak(ctx, text)
	if err != nil {
		s.log.WarnContext(ctx, "speech failed", slog.String("speaker", s.speaker.Name()), slog.Any("error", err))
		return ""
	}
	return clip
}

func (s *PracticeService) persistLibrary(ctx context.Context) {
	doc, err := sentences.Save(s.store.Sentences())
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode sentences", slog.Any("error", err))
		return
	}
	if err := s.settings.SaveLibrary(ctx, doc, sentences.FormatIndex(s.store.Index())); err != nil {
		s.log.ErrorContext(ctx, "failed to save sentences", slog.Any("error", err))
	}
}

func (s *PracticeService) persistIndex(ctx context.Context) {
	if err := s.settings.SetSetting(ctx, repository.KeyCurrentIndex, sentences.FormatIndex(s.store.Index())); err != nil {
		s.log.ErrorContext(ctx, "failed to save current index", slog.Any("error", err))
	}
}
