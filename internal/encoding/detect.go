// Package encoding normalizes uploaded bank statements to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a statement was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
	decoder xenc.Encoding
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// chardet reports names; only the single-byte ones bank exports actually use
// are mapped. Valid UTF-8 never reaches chardet.
var detected = map[string]struct {
	charset Charset
	decoder xenc.Encoding
}{
	"ISO-8859-1":   {charset: Windows1252, decoder: charmap.Windows1252},
	"windows-1252": {charset: Windows1252, decoder: charmap.Windows1252},
	"ISO-8859-9":   {charset: ISO88599, decoder: charmap.ISO8859_9},
}

// Decode sniffs the start of r and returns a reader yielding UTF-8.
//
// A BOM wins, then valid UTF-8 is passed through, then chardet's best
// guess is used. Anything unrecognized is read as Windows-1252.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(buf, bom.prefix) {
			continue
		}

		if bom.decoder == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, bom.charset, nil
		}

		return transform.NewReader(br, bom.decoder.NewDecoder()), bom.charset, nil
	}

	if validUTF8(buf, len(buf) == sniffSize) {
		return br, UTF8, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if d, ok := detected[result.Charset]; ok {
			return transform.NewReader(br, d.decoder.NewDecoder()), d.charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}

// validUTF8 reports whether buf is UTF-8. A sniffed window may end inside a
// character, so when truncated up to utf8.UTFMax-1 trailing bytes may be cut.
func validUTF8(buf []byte, truncated bool) bool {
	if utf8.Valid(buf) {
		return true
	}

	if !truncated {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return true
		}
	}

	return false
}
