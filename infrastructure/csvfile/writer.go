package csvfile

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WriteOptions controls how a file is encoded
type WriteOptions struct {
	Delimiter rune
	Encoding  Encoding
}

// WriteFile writes rows to path, replacing any existing file
func WriteFile(path string, rows [][]string, opts WriteOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(f, rows, opts)
}

// Write encodes rows onto w
func Write(w io.Writer, rows [][]string, opts WriteOptions) error {
	tw := encoder(w, opts.Encoding)

	cw := csv.NewWriter(tw)
	cw.Comma = delimiterOrDefault(opts.Delimiter)
	if err := cw.WriteAll(rows); err != nil {
		tw.Close()
		return err
	}
	return tw.Close()
}

func encoder(w io.Writer, enc Encoding) io.WriteCloser {
	switch enc {
	case EncodingANSI:
		return transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	case EncodingUTF8BOM:
		return transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	default:
		return nopCloser{w}
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// LeadingCharsMarker wraps values that spreadsheets would otherwise reformat
// (leading zeros or spaces) as ="value". Values holding quotes are left alone.
func LeadingCharsMarker(s string) string {
	if s == "" || strings.Contains(s, `"`) {
		return s
	}
	if s[0] == '0' || s[0] == ' ' {
		return `="` + s + `"`
	}
	return s
}

// StripNewLines replaces CR, LF and CRLF with a single space each
func StripNewLines(s string) string {
	return newLines.Replace(s)
}

var newLines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
