package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/cloudflex/assistant/internal/types"
)

// uploadField is the multipart form field carrying the resume file.
const uploadField = "resume"

// readResume reads a resume from a multipart upload or a JSON {"text": ...}
// body. Size and type are enforced before any text extraction.
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (*ingestion.Document, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.ScoreRequest
		if !s.decodeJSON(w, r, &req) {
			return nil, errResponded
		}
		return ingestion.ExtractText(req.Text)
	}

	// Leave room for multipart framing around the file.
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileSize+64<<10)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ingestion.FileTooLargeError{Filename: uploadField, Size: int(tooLarge.Limit) + 1, Limit: ingestion.MaxFileSize}
		}
		return nil, &ErrValidation{Field: uploadField, Message: "invalid multipart form"}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: "required"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
	}
	return ingestion.Extract(header.Filename, data)
}

// errResponded signals that readResume already wrote the error response.
var errResponded = errors.New("response already written")
