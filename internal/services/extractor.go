package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/models"
)

var log = logger.New("services")

// DefaultMaxDocumentBytes is the inclusive upload cap (8 MiB).
const DefaultMaxDocumentBytes int64 = 8 << 20

// TextStrategy is one way of turning a blob into raw text.
type TextStrategy interface {
	Name() string
	ExtractText(content []byte) (string, error)
}

type TextExtractor interface {
	Extract(ctx context.Context, content []byte, format models.DocumentFormat) (string, error)
}

type textExtractor struct {
	maxBytes int64
	chains   map[models.DocumentFormat][]TextStrategy
}

// NewTextExtractor builds the extractor with the default strategy chain for
// each supported format.
func NewTextExtractor(maxBytes int64) TextExtractor {
	return NewTextExtractorWithStrategies(maxBytes, map[models.DocumentFormat][]TextStrategy{
		models.FormatPDF: {
			NewPDFLayoutStrategy(),
			NewPDFContentStreamStrategy(),
		},
		models.FormatDOCX: {
			NewDOCXParagraphStrategy(),
		},
		models.FormatPlainText: {
			plainTextStrategy{},
		},
	})
}

func NewTextExtractorWithStrategies(maxBytes int64, chains map[models.DocumentFormat][]TextStrategy) TextExtractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	return &textExtractor{
		maxBytes: maxBytes,
		chains:   chains,
	}
}

// Extract validates the blob, runs the format's strategy chain and returns
// normalized text.
func (e *textExtractor) Extract(ctx context.Context, content []byte, format models.DocumentFormat) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyInput
	}
	if int64(len(content)) > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, len(content), e.maxBytes)
	}

	chain, ok := e.chains[format]
	if !ok || len(chain) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	text, err := runChain(chain, content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDocumentParse, format, err)
	}

	return Normalize(text), nil
}

// runChain tries each strategy in order. The first success wins.
func runChain(chain []TextStrategy, content []byte) (string, error) {
	var errs []error
	for _, strategy := range chain {
		text, err := strategy.ExtractText(content)
		if err == nil {
			return text, nil
		}

		log.WithError(err).
			WithField("strategy", strategy.Name()).
			Warn("⚠️ Extraction strategy failed")
		errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), err))
	}
	return "", errors.Join(errs...)
}

type plainTextStrategy struct{}

func (plainTextStrategy) Name() string { return "utf8-text" }

// ExtractText drops invalid UTF-8 sequences and a leading byte order mark.
func (plainTextStrategy) ExtractText(content []byte) (string, error) {
	text := strings.ToValidUTF8(string(content), "")
	return strings.TrimPrefix(text, "\ufeff"), nil
}
