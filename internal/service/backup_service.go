package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dictate/internal/models"
	"dictate/internal/repository"
	"dictate/internal/sentences"
)

// BackupService moves the saved library in and out of the database without
// a running session
type BackupService struct {
	log      *slog.Logger
	settings SettingsStore
}

// BackupSummary describes what an export or import touched
type BackupSummary struct {
	Sentences int
	Defaults  bool
}

func NewBackupService(log *slog.Logger, settings SettingsStore) *BackupService {
	return &BackupService{
		log:      log.With("service", "backup"),
		settings: settings,
	}
}

// ExportToWriter writes the saved library as an indented document. An
// empty database exports the default library.
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (BackupSummary, error) {
	library, defaults, err := s.savedLibrary(ctx)
	if err != nil {
		return BackupSummary{}, err
	}

	data, err := sentences.Export(library)
	if err != nil {
		return BackupSummary{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return BackupSummary{}, fmt.Errorf("failed to write backup: %w", err)
	}

	s.log.InfoContext(ctx, "library exported", slog.Int("sentences", len(library)))
	return BackupSummary{Sentences: len(library), Defaults: defaults}, nil
}

// ImportFromReader replaces the saved library with a sanitized document and
// resets the current index
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader) (BackupSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return BackupSummary{}, fmt.Errorf("failed to read backup: %w", err)
	}

	library, err := sentences.LoadForImport(data)
	if err != nil {
		return BackupSummary{}, err
	}

	doc, err := sentences.Save(library)
	if err != nil {
		return BackupSummary{}, fmt.Errorf("failed to encode library: %w", err)
	}
	if err := s.settings.SaveLibrary(ctx, doc, sentences.FormatIndex(0)); err != nil {
		return BackupSummary{}, fmt.Errorf("failed to save library: %w", err)
	}

	s.log.InfoContext(ctx, "library imported", slog.Int("sentences", len(library)))
	return BackupSummary{Sentences: len(library)}, nil
}

func (s *BackupService) savedLibrary(ctx context.Context) ([]models.Sentence, bool, error) {
	raw, err := s.settings.GetSetting(ctx, repository.KeySentences)
	if errors.Is(err, repository.ErrNotFound) {
		return sentences.DefaultSentences(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read library: %w", err)
	}

	library, err := sentences.Load([]byte(raw))
	if err != nil {
		s.log.WarnContext(ctx, "saved sentences unreadable, exporting defaults", slog.Any("error", err))
		return sentences.DefaultSentences(), true, nil
	}
	return library, false, nil
}
