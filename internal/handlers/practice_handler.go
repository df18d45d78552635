package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"dictate/internal/sentences"
	"dictate/internal/service"
)

// PracticeHandler exposes the dictation session over JSON
type PracticeHandler struct {
	practiceService *service.PracticeService
	exportFilename  string
	uploadMaxSize   int64
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, exportFilename string, uploadMaxSize int64) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		exportFilename:  exportFilename,
		uploadMaxSize:   uploadMaxSize,
	}
}

type checkRequest struct {
	Typed string `json:"typed"`
}

type sentenceRequest struct {
	Text string `json:"text"`
}

type navigateRequest struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// State returns the whole session
func (h *PracticeHandler) State(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.practiceService.State())
}

// Check matches the learner's input against the current sentence
func (h *PracticeHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.practiceService.Check(r.Context(), req.Typed))
}

// AddSentence appends a sentence to the library
func (h *PracticeHandler) AddSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	sentence, err := h.practiceService.AddSentence(r.Context(), req.Text)
	if err != nil {
		respondWithSessionError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, sentence)
}

// EditSentence replaces the text of one sentence
func (h *PracticeHandler) EditSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	sentence, err := h.practiceService.EditSentence(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		respondWithSessionError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sentence)
}

// DeleteSentence removes one sentence
func (h *PracticeHandler) DeleteSentence(w http.ResponseWriter, r *http.Request) {
	pos, err := h.practiceService.DeleteSentence(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithSessionError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pos)
}

// Navigate moves to the next, previous or a chosen sentence
func (h *PracticeHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	var pos service.Position
	switch req.Action {
	case "next":
		pos = h.practiceService.Skip(r.Context())
	case "previous":
		pos = h.practiceService.Previous(r.Context())
	case "select":
		var err error
		if pos, err = h.practiceService.Select(r.Context(), req.ID); err != nil {
			respondWithSessionError(w, err)
			return
		}
	default:
		respondWithError(w, http.StatusBadRequest, ErrInvalidAction, "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, pos)
}

// Replay reads the current sentence aloud again
func (h *PracticeHandler) Replay(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.practiceService.Replay(r.Context()))
}

// Export downloads the library as a JSON file
func (h *PracticeHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.practiceService.Export()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to export sentences", err)
		return
	}

	w.Header().Set("Content-Type", ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportFilename))
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write export", slog.Any("error", err))
	}
}

// Import replaces the library with an uploaded document
func (h *PracticeHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.uploadMaxSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, ErrImportTooLarge, "", err)
			return
		}
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "Failed to read import body", err)
		return
	}

	n, err := h.practiceService.Import(r.Context(), data)
	if err != nil {
		respondWithSessionError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// GetPreferences returns the sound toggles
func (h *PracticeHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.practiceService.Preferences())
}

// UpdatePreferences applies a partial preferences object
func (h *PracticeHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req map[string]bool
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	prefs, err := h.practiceService.UpdatePreferences(r.Context(), req)
	if err != nil {
		respondWithSessionError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}

func respondWithSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentences.ErrNotFound):
		respondWithError(w, http.StatusNotFound, ErrSentenceNotFound, "", nil)
	case errors.Is(err, sentences.ErrEmptyText):
		respondWithError(w, http.StatusBadRequest, ErrSentenceTextMissing, "", nil)
	case errors.Is(err, sentences.ErrInvalidDocument):
		respondWithError(w, http.StatusBadRequest, ErrImportNotArray, "Rejected import", err)
	case errors.Is(err, sentences.ErrNoValidSentences):
		respondWithError(w, http.StatusBadRequest, ErrImportNoSentences, "Rejected import", err)
	case errors.Is(err, service.ErrValidation):
		respondWithError(w, http.StatusBadRequest, ErrInvalidPreference, "", err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "", err)
	}
}
