package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"dictate/internal/repository"
)

type memorySettings struct {
	mu       sync.Mutex
	values   map[string]string
	writeErr error
	writes   int
}

func newMemorySettings(values map[string]string) *memorySettings {
	if values == nil {
		values = make(map[string]string)
	}
	return &memorySettings{values: values}
}

func (m *memorySettings) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func (m *memorySettings) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.values[key] = value
	return nil
}

func (m *memorySettings) SaveLibrary(ctx context.Context, document []byte, index string) error {
	if err := m.SetSetting(ctx, repository.KeySentences, string(document)); err != nil {
		return err
	}
	return m.SetSetting(ctx, repository.KeyCurrentIndex, index)
}

func (m *memorySettings) get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

type fakeSpeaker struct {
	spoken []string
	err    error
}

func (f *fakeSpeaker) Speak(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.spoken = append(f.spoken, text)
	return "clip-" + text, nil
}

func (f *fakeSpeaker) Name() string { return "fake" }

var errDiskFull = errors.New("disk full")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
