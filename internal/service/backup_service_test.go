package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dictate/internal/repository"
	"dictate/internal/sentences"
)

func TestBackupExportEmptyDatabase(t *testing.T) {
	backup := NewBackupService(discardLogger(), newMemorySettings(nil))

	var buf bytes.Buffer
	summary, err := backup.ExportToWriter(context.Background(), &buf)
	require.NoError(t, err)

	assert.True(t, summary.Defaults)
	assert.Equal(t, len(sentences.DefaultSentences()), summary.Sentences)
	assert.Contains(t, buf.String(), "\n  {")
}

func TestBackupExportSaved(t *testing.T) {
	settings := newMemorySettings(map[string]string{repository.KeySentences: threeSentences})
	backup := NewBackupService(discardLogger(), settings)

	var buf bytes.Buffer
	summary, err := backup.ExportToWriter(context.Background(), &buf)
	require.NoError(t, err)

	assert.False(t, summary.Defaults)
	assert.Equal(t, 3, summary.Sentences)
	assert.JSONEq(t, threeSentences, buf.String())
}

func TestBackupImport(t *testing.T) {
	settings := newMemorySettings(map[string]string{
		repository.KeySentences:    threeSentences,
		repository.KeyCurrentIndex: "2",
	})
	backup := NewBackupService(discardLogger(), settings)

	summary, err := backup.ImportFromReader(context.Background(), strings.NewReader(`[{"id":"z","text":"Only one."}]`))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sentences)
	assert.JSONEq(t, `[{"id":"z","text":"Only one."}]`, settings.get(repository.KeySentences))
	assert.Equal(t, "0", settings.get(repository.KeyCurrentIndex))
}

func TestBackupImportRejectsGarbage(t *testing.T) {
	settings := newMemorySettings(map[string]string{repository.KeySentences: threeSentences})
	backup := NewBackupService(discardLogger(), settings)

	_, err := backup.ImportFromReader(context.Background(), strings.NewReader(`"nope"`))
	assert.ErrorIs(t, err, sentences.ErrInvalidDocument)
	assert.Equal(t, threeSentences, settings.get(repository.KeySentences))
}
