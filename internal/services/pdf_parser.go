package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfLayoutStrategy reads text row by row in page order. Any failure,
// including a panic inside the reader, fails the whole document.
type pdfLayoutStrategy struct{}

func NewPDFLayoutStrategy() TextStrategy {
	return pdfLayoutStrategy{}
}

func (pdfLayoutStrategy) Name() string { return "pdf-layout" }

func (pdfLayoutStrategy) ExtractText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		pages = append(pages, joinRows(rows))
	}

	return strings.Join(pages, "\n"), nil
}

// joinRows writes one line per row. A space is inserted between glyph runs
// separated by a visible horizontal gap.
func joinRows(rows pdf.Rows) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for i, word := range row.Content {
			if i > 0 {
				prev := row.Content[i-1]
				gap := word.X - (prev.X + prev.W)
				if gap > prev.FontSize*0.2 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(word.S, " ") {
					b.WriteByte(' ')
				}
			}
			b.WriteString(word.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// pdfContentStreamStrategy is the fallback reader. It opens the document in
// relaxed mode and decodes text operators from each page's content stream.
// Pages that cannot be read contribute an empty string.
type pdfContentStreamStrategy struct {
	conf *model.Configuration
}

func NewPDFContentStreamStrategy() TextStrategy {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfContentStreamStrategy{conf: conf}
}

func (s *pdfContentStreamStrategy) Name() string { return "pdf-content-stream" }

func (s *pdfContentStreamStrategy) ExtractText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf content reader panic: %v", r)
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(content), s.conf)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return "", fmt.Errorf("failed to determine page count: %w", err)
	}

	pages := make([]string, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pages[pageNr-1] = s.pageText(ctx, pageNr)
	}

	return strings.Join(pages, "\n"), nil
}

func (s *pdfContentStreamStrategy) pageText(ctx *model.Context, pageNr int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("page", pageNr).Warnf("⚠️ Page content panic: %v", r)
			text = ""
		}
	}()

	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		if err != nil {
			log.WithError(err).WithField("page", pageNr).Debug("Skipping unreadable page")
		}
		return ""
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		log.WithError(err).WithField("page", pageNr).Debug("Skipping unreadable page")
		return ""
	}

	return ContentStreamText(raw)
}
