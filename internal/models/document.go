package models

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type DocumentFormat string

const (
	FormatPDF         DocumentFormat = "PDF"
	FormatDOCX        DocumentFormat = "DOCX"
	FormatPlainText   DocumentFormat = "PLAIN_TEXT"
	FormatUnsupported DocumentFormat = "UNSUPPORTED"
)

const (
	MIMETypePDF         = "application/pdf"
	MIMETypeDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypePlainText   = "text/plain"
	MIMETypeOctetStream = "application/octet-stream"
)

// UploadedDocument is a caller-supplied blob. It lives for one request and is
// never stored.
type UploadedDocument struct {
	Filename string
	MIMEType string
	Format   DocumentFormat
	Content  []byte
}

// FormatFromMIME maps a declared MIME type to a format tag. Parameters such as
// charset are ignored.
func FormatFromMIME(mimeType string) DocumentFormat {
	base, _, _ := strings.Cut(mimeType, ";")
	switch strings.ToLower(strings.TrimSpace(base)) {
	case MIMETypePDF:
		return FormatPDF
	case MIMETypeDOCX:
		return FormatDOCX
	case MIMETypePlainText:
		return FormatPlainText
	default:
		return FormatUnsupported
	}
}

func FormatFromFilename(name string) DocumentFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatPlainText
	default:
		return FormatUnsupported
	}
}

// DetectFormat trusts a specific declared MIME type. When the client declared
// nothing useful the content is sniffed, then the filename extension is tried.
func DetectFormat(declaredMIME, filename string, content []byte) DocumentFormat {
	declared := strings.TrimSpace(declaredMIME)
	if declared != "" && !strings.HasPrefix(strings.ToLower(declared), MIMETypeOctetStream) {
		return FormatFromMIME(declared)
	}

	if len(content) > 0 {
		detected := mimetype.Detect(content)
		for _, candidate := range []string{MIMETypePDF, MIMETypeDOCX, MIMETypePlainText} {
			if detected.Is(candidate) {
				return FormatFromMIME(candidate)
			}
		}
	}

	return FormatFromFilename(filename)
}
