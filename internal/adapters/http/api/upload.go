package api

import (
	"errors"
	"net/http"

	"github.com/okian/chargesense/internal/adapters/reader"
	"github.com/okian/chargesense/internal/domain/tabs"
	"github.com/okian/chargesense/pkg/logger"
)

// uploadField is the multipart form field carrying the spreadsheet.
const uploadField = "file"

// UploadHandler handles spreadsheet uploads.
type UploadHandler struct {
	summarizer Summarizer
	maxBytes   int64
	logger     logger.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(summarizer Summarizer, maxBytes int64, l logger.Logger) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if l == nil {
		l = logger.Nop()
	}
	return &UploadHandler{summarizer: summarizer, maxBytes: maxBytes, logger: l}
}

// HandleUpload handles POST /upload requests with a multipart "file" field.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, fh, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn(ctx, "upload too large", logger.Int64("limit", tooLarge.Limit))
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	summary, err := h.summarizer.Summarize(ctx, fh.Filename, file)
	if err != nil {
		h.writeSummarizeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// writeSummarizeError maps pipeline failures to client errors. Their messages
// are returned as-is.
func (h *UploadHandler) writeSummarizeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unsupported *reader.UnsupportedFileTypeError
		readErr     *reader.FileReadError
		missing     *tabs.MissingTabsError
	)
	switch {
	case errors.As(err, &missing):
		days := make([]string, len(missing.Missing))
		for i, d := range missing.Missing {
			days[i] = string(d)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:        "missing_tabs",
			Message:     missing.Error(),
			MissingTabs: days,
		})
	case errors.As(err, &unsupported):
		writeError(w, http.StatusBadRequest, "unsupported_file_type", unsupported)
	case errors.As(err, &readErr):
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind("api.upload", ErrPayloadTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "file_read_failed", readErr)
	default:
		h.logger.Error(r.Context(), "summarize failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind("api.upload", ErrInternal))
	}
}
