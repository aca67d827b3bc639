// Package input reads the document to validate.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadAll reads r to EOF. UTF-16 input, recognized by its byte order mark, is
// converted to UTF-8. Everything else is returned byte for byte, a UTF-8 mark
// included, so invalid UTF-8 reaches the parser as is.
func ReadAll(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	// A short peek only means the input is short; the read below reports
	// any real error.
	head, _ := br.Peek(len(utf8BOM))

	var src io.Reader = br
	if !bytes.Equal(head, utf8BOM) {
		src = transform.NewReader(br, unicode.BOMOverride(transform.Nop))
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(data), nil
}
