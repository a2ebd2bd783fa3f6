// Package ingestion turns uploaded resume files into clean plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// Kind is the detected document format.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
	KindDOCX Kind = "docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Document is the text extracted from one file.
type Document struct {
	Filename string `json:"filename"`
	Kind     Kind   `json:"kind"`
	MIME     string `json:"mime"`
	Text     string `json:"text"`
	Words    int    `json:"words"`
}

// Extract validates an upload and returns its cleaned text. Size and type
// are checked before any parsing.
func Extract(filename string, data []byte) (*Document, error) {
	if len(data) > MaxFileSize {
		return nil, &FileTooLargeError{Filename: filename, Size: len(data), Limit: MaxFileSize}
	}

	mime := mimetype.Detect(data)
	kind, ok := classify(mime, filename)
	if !ok {
		return nil, &UnsupportedTypeError{Filename: filename, MIME: mime.String()}
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindText:
		text = decodeText(data)
	case KindPDF:
		text, err = pdfText(data)
	case KindHTML:
		text, err = htmlText(string(data))
	case KindDOCX:
		text, err = docxText(data)
	}
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Kind: kind, Cause: err}
	}

	text = CleanText(text)
	return &Document{
		Filename: filename,
		Kind:     kind,
		MIME:     mime.String(),
		Text:     text,
		Words:    len(strings.Fields(text)),
	}, nil
}

// ExtractText wraps raw pasted text as a document.
func ExtractText(text string) (*Document, error) {
	return Extract("pasted.txt", []byte(text))
}

func classify(mime *mimetype.MIME, filename string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/pdf"):
			return KindPDF, true
		case m.Is("text/html"):
			return KindHTML, true
		case m.Is(docxMIME):
			return KindDOCX, true
		case m.Is("application/zip") && ext == ".docx":
			return KindDOCX, true
		case m.Is("text/plain"):
			return KindText, true
		}
	}
	return "", false
}

func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

func pdfText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return buf.String(), nil
}

// docxText returns the paragraph text of word/document.xml.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("word/document.xml not found")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var sb strings.Builder
	dec := xml.NewDecoder(io.LimitReader(rc, 4*MaxFileSize))
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
