package handlers

const (
	ExportContentType = "application/json"

	ErrInvalidJSON         = "Invalid JSON body"
	ErrInvalidAction       = "Unknown navigation action"
	ErrSentenceNotFound    = "Sentence not found"
	ErrSentenceTextMissing = "Sentence text is required"
	ErrImportNotArray      = "Import failed: the file must contain a JSON array of sentences"
	ErrImportNoSentences   = "Import failed: no valid sentences were found in the file"
	ErrImportTooLarge      = "Import failed: the file is too large"
	ErrInvalidPreference   = "Unknown preference"
	ErrInternalServerError = "Internal server error"
)
