package services

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

type csTokenKind int

const (
	csEOF csTokenKind = iota
	csString
	csNumber
	csOperator
	csArrayStart
	csArrayEnd
	csOther
)

type csToken struct {
	kind csTokenKind
	text string
	num  float64
}

// tjSpaceThreshold is the TJ displacement (thousandths of text space) beyond
// which a word gap is assumed.
const tjSpaceThreshold = -180

// ContentStreamText extracts readable text from a decoded page content stream.
// Only the text-showing operators are interpreted; fonts are not consulted, so
// strings are read as PDFDocEncoding or UTF-16BE with a byte order mark.
func ContentStreamText(stream []byte) string {
	lex := &csLexer{data: stream}
	w := &textWriter{}

	var (
		operands []csToken
		array    []csToken
		inArray  bool
	)

	for {
		tok := lex.next()
		switch tok.kind {
		case csEOF:
			return strings.TrimSpace(w.String())
		case csArrayStart:
			inArray = true
			array = array[:0]
		case csArrayEnd:
			inArray = false
		case csString, csNumber:
			if inArray {
				array = append(array, tok)
			} else {
				operands = append(operands, tok)
			}
		case csOperator:
			switch tok.text {
			case "Tj":
				w.writeText(lastString(operands))
			case "'", "\"":
				w.newline()
				w.writeText(lastString(operands))
			case "TJ":
				for _, part := range array {
					if part.kind == csString {
						w.writeText(part.text)
					} else if part.num <= tjSpaceThreshold {
						w.space()
					}
				}
			case "T*", "ET":
				w.newline()
			case "Td", "TD":
				if len(operands) >= 2 && operands[len(operands)-1].num != 0 {
					w.newline()
				} else if len(operands) >= 2 && operands[len(operands)-2].num > 0 {
					w.space()
				}
			case "Tm":
				w.newline()
			case "BI":
				lex.skipInlineImage()
			}
			operands = operands[:0]
			array = array[:0]
		default:
			if !inArray {
				operands = append(operands, tok)
			}
		}
	}
}

func lastString(operands []csToken) string {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == csString {
			return operands[i].text
		}
	}
	return ""
}

type textWriter struct {
	b strings.Builder
}

func (w *textWriter) String() string { return w.b.String() }

func (w *textWriter) last() byte {
	s := w.b.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

func (w *textWriter) writeText(s string) {
	w.b.WriteString(s)
}

func (w *textWriter) newline() {
	if last := w.last(); last != 0 && last != '\n' {
		w.b.WriteByte('\n')
	}
}

func (w *textWriter) space() {
	if last := w.last(); last != 0 && last != '\n' && last != ' ' {
		w.b.WriteByte(' ')
	}
}

type csLexer struct {
	data []byte
	pos  int
}

func isPDFWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *csLexer) next() csToken {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isPDFWhitespace(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		break
	}
	if l.pos >= len(l.data) {
		return csToken{kind: csEOF}
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return csToken{kind: csString, text: decodePDFString(l.readLiteral())}
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		return csToken{kind: csOther, text: "<<"}
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return csToken{kind: csOther, text: ">>"}
	case c == '<':
		l.pos++
		return csToken{kind: csString, text: decodePDFString(l.readHex())}
	case c == '[':
		l.pos++
		return csToken{kind: csArrayStart}
	case c == ']':
		l.pos++
		return csToken{kind: csArrayEnd}
	case c == '/':
		l.pos++
		return csToken{kind: csOther, text: "/" + l.readRegular()}
	case isPDFDelimiter(c):
		l.pos++
		return csToken{kind: csOther, text: string(c)}
	}

	word := l.readRegular()
	if num, err := strconv.ParseFloat(word, 64); err == nil {
		return csToken{kind: csNumber, text: word, num: num}
	}
	return csToken{kind: csOperator, text: word}
}

func (l *csLexer) peek(offset int) byte {
	if l.pos+offset < len(l.data) {
		return l.data[l.pos+offset]
	}
	return 0
}

func (l *csLexer) readRegular() string {
	start := l.pos
	for l.pos < len(l.data) && !isPDFWhitespace(l.data[l.pos]) && !isPDFDelimiter(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start && l.pos < len(l.data) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// readLiteral reads a (...) string body after the opening parenthesis.
func (l *csLexer) readLiteral() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos >= len(l.data) {
				return out
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
						v = v*8 + int(l.data[l.pos]-'0')
						l.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// readHex reads a <...> string body after the opening angle bracket.
func (l *csLexer) readHex() []byte {
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if isPDFWhitespace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	n, err := hex.Decode(out, digits)
	if err != nil {
		return out[:n]
	}
	return out
}

// skipInlineImage advances past binary inline image data up to EI.
func (l *csLexer) skipInlineImage() {
	idx := bytes.Index(l.data[l.pos:], []byte("ID"))
	if idx < 0 {
		l.pos = len(l.data)
		return
	}
	l.pos += idx + 2
	for l.pos < len(l.data) {
		idx := bytes.Index(l.data[l.pos:], []byte("EI"))
		if idx < 0 {
			l.pos = len(l.data)
			return
		}
		end := l.pos + idx
		l.pos = end + 2
		if end > 0 && isPDFWhitespace(l.data[end-1]) && (l.pos >= len(l.data) || isPDFWhitespace(l.data[l.pos])) {
			return
		}
	}
}

func decodePDFString(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		units := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}

	var sb strings.Builder
	for _, c := range b {
		r := rune(c)
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
