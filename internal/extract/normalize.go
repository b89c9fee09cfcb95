package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Format is the declared source format of an imported document.
// PDF text extraction itself happens outside this package; FormatPDF only
// tells the normalizer to repair hyphenated line wraps left behind by it.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatTXT Format = "txt"
	FormatMD  Format = "md"
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

// ParseFormat maps a file extension (with or without leading dot) to a
// Format. Unknown extensions fail with ErrUnsupportedFormat.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return FormatPDF, nil
	case "txt", "text":
		return FormatTXT, nil
	case "md", "markdown":
		return FormatMD, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Line is one normalized line of a document. Number refers to the line's
// position in the raw input, so candidates can point back at their source.
// Fields is populated for csv/tsv input, where the document's own field
// separator takes precedence over free-text delimiter splitting.
type Line struct {
	Text   string
	Number int
	Fields []string
}

// Normalize turns raw document text into trimmed, non-empty lines.
// PDF input additionally gets hyphenated line wraps rejoined, markdown
// input gets heading and list markers stripped, and csv/tsv input is
// split into columns. It fails with ErrEmptyDocument when nothing
// survives normalization.
func Normalize(raw string, format Format) ([]Line, error) {
	switch format {
	case FormatPDF, FormatTXT, FormatMD, FormatCSV, FormatTSV:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if format == FormatPDF {
		raw = joinHyphenWraps(raw)
	}

	var lines []Line
	for i, rawLine := range strings.Split(raw, "\n") {
		text := strings.TrimSpace(rawLine)
		if text == "" {
			continue
		}
		line := Line{Text: text, Number: i + 1}

		switch format {
		case FormatMD:
			line.Text = stripMarkdownMarkers(text)
			if line.Text == "" {
				continue
			}
		case FormatCSV:
			line.Fields = splitFields(text, ',')
		case FormatTSV:
			line.Fields = splitFields(text, '\t')
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyDocument
	}
	return lines, nil
}

// joinHyphenWraps repairs words broken across lines by PDF text
// extraction: a line ending in "-" followed by a line starting with a
// lowercase letter is rejoined without the hyphen.
func joinHyphenWraps(raw string) string {
	lines := strings.Split(raw, "\n")
	for i := 0; i < len(lines); i++ {
		cur := strings.TrimRight(lines[i], " \t\r")
		// consumed continuation lines are blanked, not removed, so raw
		// line numbering stays intact
		j := i + 1
		for strings.HasSuffix(cur, "-") && j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if next == "" || !startsLower(next) {
				break
			}
			cur = strings.TrimSuffix(cur, "-") + next
			lines[j] = ""
			j++
		}
		lines[i] = cur
	}
	return strings.Join(lines, "\n")
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

func stripMarkdownMarkers(text string) string {
	text = strings.TrimLeft(text, "#>")
	trimmed := strings.TrimSpace(text)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):])
		}
	}
	return stripOrderedPrefix(trimmed)
}

// stripOrderedPrefix removes a numbered-list marker ("1. " or "1) ").
func stripOrderedPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
		return s
	}
	rest := s[i+1:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return s
	}
	return strings.TrimSpace(rest)
}

// splitFields parses a single line with encoding/csv so quoted fields
// behave as users expect. A malformed line falls back to a single column.
func splitFields(text string, comma rune) []string {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.TrimLeadingSpace = true
	record, err := r.Read()
	if err != nil && err != io.EOF {
		return []string{text}
	}
	for i, f := range record {
		record[i] = strings.TrimSpace(f)
	}
	return record
}
