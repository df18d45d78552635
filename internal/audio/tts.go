package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ttsRequestTimeout = 10 * time.Second
	googleTTSURL      = "https://translate.google.com/translate_tts"
)

// TTSService synthesizes sentences into MP3 clips with Google Translate TTS
type TTSService struct {
	audioDir string
	language string
	baseURL  string
	client   *http.Client
}

// NewTTSService creates a new TTS service writing clips to audioDir
func NewTTSService(audioDir, language string) *TTSService {
	if language == "" {
		language = "en"
	}
	return &TTSService{
		audioDir: audioDir,
		language: language,
		baseURL:  googleTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// Name identifies the speaker in logs
func (s *TTSService) Name() string {
	return "google-tts"
}

// Speak returns the clip filename for text, generating it on first use
func (s *TTSService) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to speak")
	}

	filename := ClipName(s.language, text)
	path := filepath.Join(s.audioDir, filename)

	// Reuse a clip generated earlier for the same text
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.generate(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// ClipName derives a stable filename from the language and text
func ClipName(language, text string) string {
	sum := sha256.Sum256([]byte(language + "\x00" + text))
	return fmt.Sprintf("sentence_%s.mp3", hex.EncodeToString(sum[:8]))
}

func (s *TTSService) generate(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a
	// truncated clip that would be reused
	tmp, err := os.CreateTemp(s.audioDir, "clip-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return os.Rename(tmp.Name(), outputPath)
}

// DeleteClip removes a generated clip
func (s *TTSService) DeleteClip(filename string) error {
	path := filepath.Join(s.audioDir, filepath.Base(filename))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // Already deleted
	}
	return os.Remove(path)
}

// Clips returns all MP3 files in the audio directory
func (s *TTSService) Clips() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var clips []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			clips = append(clips, file.Name())
		}
	}
	return clips, nil
}

// Prune deletes clips that belong to none of the given sentence texts and
// returns how many were removed
func (s *TTSService) Prune(texts []string) (int, error) {
	keep := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		keep[ClipName(s.language, strings.TrimSpace(text))] = struct{}{}
	}

	clips, err := s.Clips()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, clip := range clips {
		if _, ok := keep[clip]; ok {
			continue
		}
		if err := s.DeleteClip(clip); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", clip, err)
		}
		removed++
	}
	return removed, nil
}
