// Package encoding turns supplier CSV exports of unknown encoding into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names an input encoding the reader knows how to decode.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

// sampleSize is how much of the input is inspected.
const sampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of sample. A byte-order mark wins, then valid
// UTF-8, then chardet's best guess. Anything else is read as Windows-1252,
// which is what spreadsheet exports on Windows produce.
func Detect(sample []byte) Charset {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(sample, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(trimPartialRune(sample)):
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return UTF8
		case "ISO-8859-9":
			return ISO88599
		}
	}

	return Windows1252
}

func decoder(c Charset) *xencoding.Decoder {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case ISO88599:
		return charmap.ISO8859_9.NewDecoder()
	case Windows1252:
		return charmap.Windows1252.NewDecoder()
	}

	return nil
}

// NewUTF8Reader returns r decoded to UTF-8, with any UTF-8 BOM stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	charset := Detect(sample)
	slog.Debug("detected input encoding", "charset", charset)

	switch charset {
	case UTF8:
		return br, nil
	case UTF8BOM:
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	return transform.NewReader(br, decoder(charset)), nil
}

// trimPartialRune drops a multi-byte sequence cut off by the end of the sample.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if utf8.FullRune(b[len(b)-i:]) {
			return b
		}

		return b[:len(b)-i]
	}

	return b
}
