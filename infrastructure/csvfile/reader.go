package csvfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one data row with its 1-based line number
type Record struct {
	Line   int
	Fields []string
}

// Field returns the i-th field, or "" when the row is shorter
func (r Record) Field(i int) string {
	if i < len(r.Fields) {
		return r.Fields[i]
	}
	return ""
}

// ReadOptions controls how a file is decoded
type ReadOptions struct {
	Delimiter rune
	Encoding  Encoding
	// MinFields rejects rows with fewer fields
	MinFields int
}

// ParseError locates a malformed row
type ParseError struct {
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s line %d, column %d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrTooFewFields is wrapped by a ParseError for short rows
var ErrTooFewFields = errors.New("wrong number of fields")

// ReadFile reads every data row of path. A first row whose first cell is "ID"
// is treated as a header and skipped.
func ReadFile(path string, opts ReadOptions) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, path, opts)
}

// Read reads every data row from r; name is used in error messages
func Read(r io.Reader, name string, opts ReadOptions) ([]Record, error) {
	cr := csv.NewReader(decoder(bufio.NewReader(r), opts.Encoding))
	cr.Comma = delimiterOrDefault(opts.Delimiter)
	cr.FieldsPerRecord = -1

	var records []Record
	first := true
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{File: name, Line: pe.Line, Column: pe.Column, Err: pe.Err}
			}
			return nil, &ParseError{File: name, Err: err}
		}

		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}
		if isBlank(fields) {
			continue
		}
		if len(fields) < opts.MinFields {
			return nil, &ParseError{
				File:   name,
				Line:   line,
				Column: len(fields) + 1,
				Err:    fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(fields), opts.MinFields),
			}
		}

		for i, v := range fields {
			fields[i] = unwrapLeadingChars(v)
		}
		records = append(records, Record{Line: line, Fields: fields})
	}
	return records, nil
}

func decoder(r io.Reader, enc Encoding) io.Reader {
	if enc == EncodingANSI {
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}
	// strips a leading BOM when there is one
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return ','
	}
	return d
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "ID")
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// unwrapLeadingChars turns the spreadsheet marker ="value" back into value
func unwrapLeadingChars(s string) string {
	if len(s) < 3 || !strings.HasPrefix(s, `="`) || !strings.HasSuffix(s, `"`) {
		return s
	}
	inner := s[2 : len(s)-1]
	if strings.Contains(inner, `"`) {
		return s
	}
	return inner
}
