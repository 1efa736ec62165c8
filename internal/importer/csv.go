// Package importer reads name/email pairs from spreadsheet exports so they
// can be fed through the intake service in bulk.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrMissingColumns = errors.New("CSV file missing required name and email columns")
	ErrEmptyFile      = errors.New("CSV file is empty")
)

// Definition of the header names of an export, in one language
type ListDefinition struct {
	NameField  string
	EmailField string

	Language string // Language code, e.g. "en", "es"
}

// Known header names. Matching is case-insensitive.
var ListDefinitions = []ListDefinition{
	{NameField: "name", EmailField: "email", Language: "en"},
	{NameField: "nombre", EmailField: "correo", Language: "es"},
	{NameField: "nombre", EmailField: "email", Language: "es"},
}

// Pair is one row of an import. Values are passed on exactly as read,
// without trimming, so validation sees the raw address.
type Pair struct {
	Line  int
	Name  string
	Email string
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a comma, semicolon or tab separated export with a header row.
// UTF-16 input is accepted when it starts with a byte order mark.
func Read(r io.Reader) ([]Pair, error) {
	br := bufio.NewReader(r)

	// Detect BOM and decode UTF-16 if present. Spreadsheet exports are often UTF-16 with BOM.
	var src io.Reader
	bom, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read BOM: %w", err)
	}
	if len(bom) == 2 && (bom[0] == 0xFE && bom[1] == 0xFF || bom[0] == 0xFF && bom[1] == 0xFE) {
		utf16bom := unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
		src = transform.NewReader(br, utf16bom)
	} else {
		// No BOM, assume sensible UTF-8. A UTF-8 BOM is dropped.
		src = transform.NewReader(br, unicode.UTF8BOM.NewDecoder())
	}

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSV file: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idxName, idxEmail, def := findColumns(headers)
	if idxName == -1 || idxEmail == -1 {
		return nil, ErrMissingColumns
	}
	slog.Debug("Matched CSV header", "language", def.Language, "name_column", idxName, "email_column", idxEmail)

	var pairs []Pair
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && record[0] == "" {
			continue
		}

		pairs = append(pairs, Pair{
			Line:  line,
			Name:  field(record, idxName),
			Email: field(record, idxEmail),
		})
	}
	return pairs, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func findColumns(headers []string) (int, int, ListDefinition) {
	for _, def := range ListDefinitions {
		idxName, idxEmail := -1, -1
		for i, h := range headers {
			switch {
			case strings.EqualFold(strings.TrimSpace(h), def.NameField):
				idxName = i
			case strings.EqualFold(strings.TrimSpace(h), def.EmailField):
				idxEmail = i
			}
		}
		if idxName != -1 && idxEmail != -1 {
			return idxName, idxEmail, def
		}
	}
	return -1, -1, ListDefinition{}
}

// detectDelimiter picks the separator that occurs most in the header line.
func detectDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(header, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
