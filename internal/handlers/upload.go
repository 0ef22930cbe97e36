package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// readUpload reads at most maxBytes+1 bytes so an oversized file is reported by
// the extractor without buffering all of it.
func readUpload(header *multipart.FileHeader, maxBytes int64) (models.UploadedDocument, error) {
	file, err := header.Open()
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	declared := header.Header.Get("Content-Type")
	return models.UploadedDocument{
		Filename: header.Filename,
		MIMEType: declared,
		Format:   models.DetectFormat(declared, header.Filename, content),
		Content:  content,
	}, nil
}
