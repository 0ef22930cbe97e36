package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want DocumentFormat
	}{
		{"application/pdf", FormatPDF},
		{"APPLICATION/PDF", FormatPDF},
		{"text/plain; charset=utf-8", FormatPlainText},
		{MIMETypeDOCX, FormatDOCX},
		{"application/msword", FormatUnsupported},
		{"image/png", FormatUnsupported},
		{"", FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromMIME(tt.mime))
		})
	}
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFromFilename("cv.PDF"))
	assert.Equal(t, FormatDOCX, FormatFromFilename("resume.docx"))
	assert.Equal(t, FormatPlainText, FormatFromFilename("notes.txt"))
	assert.Equal(t, FormatUnsupported, FormatFromFilename("resume.doc"))
	assert.Equal(t, FormatUnsupported, FormatFromFilename("README"))
}

func TestDetectFormat(t *testing.T) {
	t.Run("declared type wins", func(t *testing.T) {
		assert.Equal(t, FormatPDF, DetectFormat("application/pdf", "resume.txt", []byte("hello")))
	})

	t.Run("declared unsupported type is not overridden", func(t *testing.T) {
		assert.Equal(t, FormatUnsupported, DetectFormat("image/png", "resume.pdf", []byte("%PDF-1.4")))
	})

	t.Run("octet-stream is sniffed", func(t *testing.T) {
		assert.Equal(t, FormatPDF, DetectFormat("application/octet-stream", "upload.bin", []byte("%PDF-1.4\n%...")))
	})

	t.Run("missing type sniffs plain text", func(t *testing.T) {
		assert.Equal(t, FormatPlainText, DetectFormat("", "upload", []byte("Jane Doe\nSoftware Engineer\n")))
	})

	t.Run("falls back to extension", func(t *testing.T) {
		assert.Equal(t, FormatDOCX, DetectFormat("", "resume.docx", nil))
	})
}
