package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentStreamText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "simple show",
			stream: "BT /F1 12 Tf 72 720 Td (Hello) Tj ET",
			want:   "Hello",
		},
		{
			name:   "kerned array with word gap",
			stream: "BT [(Hel) -20 (lo) -250 (World)] TJ ET",
			want:   "Hello World",
		},
		{
			name:   "next line operator",
			stream: "BT (first) Tj T* (second) Tj ET",
			want:   "first\nsecond",
		},
		{
			name:   "quote operator starts a new line",
			stream: "BT (first) Tj (second) ' ET",
			want:   "first\nsecond",
		},
		{
			name:   "vertical move breaks the line",
			stream: "BT (Name) Tj 0 -14 Td (Title) Tj ET",
			want:   "Name\nTitle",
		},
		{
			name:   "horizontal move adds a space",
			stream: "BT (Jane) Tj 40 0 Td (Doe) Tj ET",
			want:   "Jane Doe",
		},
		{
			name:   "separate text objects",
			stream: "BT (one) Tj ET BT (two) Tj ET",
			want:   "one\ntwo",
		},
		{
			name:   "literal escapes",
			stream: `BT (a\(b\) \101) Tj ET`,
			want:   "a(b) A",
		},
		{
			name:   "balanced parentheses",
			stream: "BT (x (y) z) Tj ET",
			want:   "x (y) z",
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   "Hello",
		},
		{
			name:   "utf-16 hex string",
			stream: "BT <FEFF004A00F3> Tj ET",
			want:   "Jó",
		},
		{
			name:   "comments are skipped",
			stream: "% generated\nBT (kept) Tj ET",
			want:   "kept",
		},
		{
			name:   "inline image data is skipped",
			stream: "BI /W 1 /H 1 /BPC 8 ID \x00\xff(Tj EI BT (after) Tj ET",
			want:   "after",
		},
		{
			name:   "graphics only",
			stream: "q 1 0 0 1 0 0 cm 0 0 100 100 re f Q",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentStreamText([]byte(tt.stream)))
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	assert.Equal(t, "abc", decodePDFString([]byte("abc")))
	assert.Equal(t, "ab", decodePDFString([]byte{'a', 0x01, 'b'}))
	assert.Equal(t, "é", decodePDFString([]byte{0xFE, 0xFF, 0x00, 0xE9}))
}
