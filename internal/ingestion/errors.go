package ingestion

import "fmt"

// MaxFileSize is the largest resume accepted, in bytes.
const MaxFileSize = 5 << 20

// FileTooLargeError is returned for uploads over the size limit.
type FileTooLargeError struct {
	Filename string
	Size     int
	Limit    int
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s is %d bytes; the limit is %d bytes", e.Filename, e.Size, e.Limit)
}

// UnsupportedTypeError is returned for files that are not text, PDF, HTML or DOCX.
type UnsupportedTypeError struct {
	Filename string
	MIME     string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %s for %s: upload a PDF, DOCX, HTML or text file", e.MIME, e.Filename)
}

// ExtractionError wraps a failure to read text out of a supported file.
type ExtractionError struct {
	Filename string
	Kind     Kind
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text from %s: %v", e.Kind, e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
