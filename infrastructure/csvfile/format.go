// Package csvfile reads and writes the three-file CSV model format:
// <prefix>elements.csv, <prefix>relations.csv and <prefix>properties.csv.
package csvfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ElementsFile   = "elements.csv"
	RelationsFile  = "relations.csv"
	PropertiesFile = "properties.csv"
)

// ModelType is the Type cell of the model row in the elements file
const ModelType = "ArchimateModel"

var (
	ElementsHeader   = []string{"ID", "Type", "Name", "Documentation", "Specialization"}
	RelationsHeader  = []string{"ID", "Type", "Name", "Documentation", "Source", "Target", "Specialization"}
	PropertiesHeader = []string{"ID", "Key", "Value"}
)

// Minimum field counts per data row
const (
	ElementsMinFields   = 4
	RelationsMinFields  = 6
	PropertiesMinFields = 3
)

// Encoding is the text encoding of a CSV file
type Encoding string

const (
	EncodingUTF8    Encoding = "UTF-8"
	EncodingUTF8BOM Encoding = "UTF-8 BOM"
	EncodingANSI    Encoding = "ANSI"
)

// ParseEncoding accepts the encoding names used in config files and requests
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UTF-8", "UTF8":
		return EncodingUTF8, nil
	case "UTF-8 BOM", "UTF8BOM", "UTF-8-BOM":
		return EncodingUTF8BOM, nil
	case "ANSI", "WINDOWS-1252", "CP1252":
		return EncodingANSI, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %q", s)
	}
}

// ParseDelimiter accepts ",", ";", "\t" or the names comma, semicolon and tab
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q", s)
	}
}

// FileSet is the three sibling paths of one CSV model export
type FileSet struct {
	Elements   string
	Relations  string
	Properties string
}

// NewFileSet builds the paths for prefix in dir
func NewFileSet(dir, prefix string) FileSet {
	return FileSet{
		Elements:   filepath.Join(dir, prefix+ElementsFile),
		Relations:  filepath.Join(dir, prefix+RelationsFile),
		Properties: filepath.Join(dir, prefix+PropertiesFile),
	}
}

// FileSetFor derives the set from the path of any one of its files
func FileSetFor(path string) (FileSet, error) {
	dir, base := filepath.Split(path)
	for _, name := range []string{ElementsFile, RelationsFile, PropertiesFile} {
		if strings.HasSuffix(strings.ToLower(base), name) {
			prefix := base[:len(base)-len(name)]
			return NewFileSet(dir, prefix), nil
		}
	}
	return FileSet{}, fmt.Errorf("not a model CSV file (expected *%s, *%s or *%s): %s",
		ElementsFile, RelationsFile, PropertiesFile, path)
}
