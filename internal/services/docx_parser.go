package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type docxParagraphStrategy struct{}

func NewDOCXParagraphStrategy() TextStrategy {
	return docxParagraphStrategy{}
}

func (docxParagraphStrategy) Name() string { return "docx-paragraphs" }

// ExtractText returns one line per paragraph of the main document part, in
// document order. Paragraphs inside tables are included.
func (docxParagraphStrategy) ExtractText(content []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX package: %w", err)
	}
	defer r.Close()

	body := r.Editable().GetContent()
	if strings.TrimSpace(body) == "" {
		return "", errors.New("DOCX package has no document body")
	}

	paragraphs, err := docxParagraphs(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	return strings.Join(paragraphs, "\n"), nil
}

func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		open       []*strings.Builder
		inText     bool
		inProps    int
	)

	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			switch el.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "pPr", "rPr":
				inProps++
			case "t":
				inText = true
			case "tab":
				if b := current(); b != nil && inProps == 0 {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if b := current(); b != nil {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			switch el.Name.Local {
			case "p":
				if b := current(); b != nil {
					paragraphs = append(paragraphs, b.String())
					open = open[:len(open)-1]
				}
			case "pPr", "rPr":
				if inProps > 0 {
					inProps--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if b := current(); b != nil && inText {
				b.Write(el)
			}
		}
	}

	return paragraphs, nil
}
