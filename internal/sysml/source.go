package sysml

import (
	"sort"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v15/textseg"
	"github.com/hashicorp/hcl/v2"
)

// sourceIndex converts byte offsets into line/column positions. Columns count
// grapheme clusters, as hcl does for its own sources.
type sourceIndex struct {
	filename   string
	src        []byte
	lineStarts []int

	// Positions are mostly requested in increasing order, so the last
	// answer is kept to avoid rescanning long lines.
	lastOffset int
	lastLine   int
	lastColumn int

	// Same for charOffset.
	lastCharByte int
	lastChar     int
}

func newSourceIndex(filename string, src []byte) *sourceIndex {
	lineStarts := []int{0}
	for i, c := range src {
		if c == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &sourceIndex{
		filename:   filename,
		src:        src,
		lineStarts: lineStarts,
		lastLine:   1,
		lastColumn: 1,
	}
}

func (s *sourceIndex) pos(offset int) hcl.Pos {
	if offset > len(s.src) {
		offset = len(s.src)
	}

	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	lineStart := s.lineStarts[line-1]

	from, column := lineStart, 1
	if line == s.lastLine && offset >= s.lastOffset && s.lastOffset >= lineStart {
		from, column = s.lastOffset, s.lastColumn
	}
	column += countGraphemes(s.src[from:offset])

	s.lastOffset, s.lastLine, s.lastColumn = offset, line, column

	return hcl.Pos{Line: line, Column: column, Byte: offset}
}

func (s *sourceIndex) rangeOf(start, end int) hcl.Range {
	return hcl.Range{
		Filename: s.filename,
		Start:    s.pos(start),
		End:      s.pos(end),
	}
}

func countGraphemes(b []byte) int {
	n := 0
	for len(b) > 0 {
		advance, _, err := textseg.ScanGraphemeClusters(b, true)
		if err != nil || advance <= 0 {
			advance = 1
		}
		b = b[advance:]
		n++
	}
	return n
}

// charOffset converts a byte offset into an offset in UTF-16 code units,
// the unit editors and the reference tooling count characters in. A rune
// outside the Basic Multilingual Plane counts twice.
func (s *sourceIndex) charOffset(offset int) int {
	if offset > len(s.src) {
		offset = len(s.src)
	}

	from, chars := 0, 0
	if offset >= s.lastCharByte {
		from, chars = s.lastCharByte, s.lastChar
	}
	for b := s.src[from:offset]; len(b) > 0; {
		r, size := utf8.DecodeRune(b)
		if r > 0xFFFF {
			chars += 2
		} else {
			chars++
		}
		b = b[size:]
	}

	s.lastCharByte, s.lastChar = offset, chars
	return chars
}
