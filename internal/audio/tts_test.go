package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*TTSService, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	svc := NewTTSService(t.TempDir(), "en")
	svc.baseURL = server.URL
	return svc, &calls
}

func TestSpeakGeneratesAndReusesClip(t *testing.T) {
	svc, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Hello there." {
			t.Errorf("q = %q, want %q", got, "Hello there.")
		}
		if got := r.URL.Query().Get("tl"); got != "en" {
			t.Errorf("tl = %q, want en", got)
		}
		w.Write([]byte("mp3-bytes"))
	})

	clip, err := svc.Speak(context.Background(), "Hello there.")
	if err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if clip != ClipName("en", "Hello there.") {
		t.Errorf("clip = %q, want %q", clip, ClipName("en", "Hello there."))
	}

	data, err := os.ReadFile(filepath.Join(svc.audioDir, clip))
	if err != nil {
		t.Fatalf("clip not written: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("clip content = %q", data)
	}

	if _, err := svc.Speak(context.Background(), "Hello there."); err != nil {
		t.Fatalf("second Speak() error = %v", err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}
}

func TestSpeakUpstreamFailureLeavesNoClip(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	})

	if _, err := svc.Speak(context.Background(), "Hello"); err == nil {
		t.Fatal("expected error for upstream failure")
	}

	clips, err := svc.Clips()
	if err != nil {
		t.Fatalf("Clips() error = %v", err)
	}
	if len(clips) != 0 {
		t.Errorf("expected no clips, got %v", clips)
	}
}

func TestSpeakEmptyText(t *testing.T) {
	svc := NewTTSService(t.TempDir(), "")
	if _, err := svc.Speak(context.Background(), "   "); err == nil {
		t.Error("expected error for empty text")
	}
	if svc.language != "en" {
		t.Errorf("language = %q, want default en", svc.language)
	}
}

func TestClipNameStable(t *testing.T) {
	a := ClipName("en", "The quick brown fox.")
	b := ClipName("en", "The quick brown fox.")
	c := ClipName("de", "The quick brown fox.")

	if a != b {
		t.Errorf("ClipName not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Error("ClipName should depend on language")
	}
	if filepath.Ext(a) != ".mp3" {
		t.Errorf("ClipName extension = %q", filepath.Ext(a))
	}
}

func TestDeleteClip(t *testing.T) {
	svc := NewTTSService(t.TempDir(), "en")
	path := filepath.Join(svc.audioDir, "sentence_x.mp3")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteClip("sentence_x.mp3"); err != nil {
		t.Fatalf("DeleteClip() error = %v", err)
	}
	if err := svc.DeleteClip("sentence_x.mp3"); err != nil {
		t.Fatalf("DeleteClip() on missing file error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clip should be gone")
	}
}

func TestNewSpeaker(t *testing.T) {
	if _, ok := NewSpeaker(false, t.TempDir(), "en").(NoopSpeaker); !ok {
		t.Error("disabled speech should give NoopSpeaker")
	}

	dir := filepath.Join(t.TempDir(), "audio")
	if _, ok := NewSpeaker(true, dir, "en").(*TTSService); !ok {
		t.Error("enabled speech should give TTSService")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("audio dir not created: %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewSpeaker(true, filepath.Join(blocker, "audio"), "en").(NoopSpeaker); !ok {
		t.Error("unusable audio dir should give NoopSpeaker")
	}
}

func TestPrune(t *testing.T) {
	svc := NewTTSService(t.TempDir(), "en")
	kept := ClipName("en", "Keep me.")
	for _, name := range []string{kept, "sentence_old.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(svc.audioDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := svc.Prune([]string{"  Keep me. "})
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	clips, err := svc.Clips()
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 1 || clips[0] != kept {
		t.Errorf("remaining clips = %v, want [%s]", clips, kept)
	}
}
