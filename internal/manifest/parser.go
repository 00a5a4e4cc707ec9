package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformed indicates a CONTROL file that could be read but not parsed
// into a usable first paragraph
var ErrMalformed = errors.New("malformed control file")

// Paragraph is one blank-line-delimited block of Key: value fields
type Paragraph map[string]string

// ParseParagraphs parses a Debian-style control stream into paragraphs.
// Continuation lines (leading space or tab) are joined to the previous
// field with a newline.
func ParseParagraphs(r io.Reader) ([]Paragraph, error) {
	var paragraphs []Paragraph
	var current Paragraph
	var currentKey string
	var currentValue strings.Builder

	flushField := func() {
		if currentKey == "" {
			return
		}
		if current == nil {
			current = make(Paragraph)
		}
		current[currentKey] = currentValue.String()
		currentKey = ""
		currentValue.Reset()
	}

	flushParagraph := func() {
		flushField()
		if current != nil {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		// Blank line ends the current paragraph
		if strings.TrimSpace(line) == "" {
			flushParagraph()
			continue
		}

		// Continuation lines belong to the previous field
		if line[0] == ' ' || line[0] == '\t' {
			if currentKey == "" {
				return nil, fmt.Errorf("%w: continuation line without a field", ErrMalformed)
			}
			currentValue.WriteString("\n")
			currentValue.WriteString(strings.TrimSpace(line))
			continue
		}

		if !strings.Contains(line, ":") {
			return nil, fmt.Errorf("%w: expected 'Field: value', got %q", ErrMalformed, line)
		}

		flushField()
		parts := strings.SplitN(line, ":", 2)
		currentKey = strings.TrimSpace(parts[0])
		currentValue.WriteString(strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flushParagraph()

	return paragraphs, nil
}

// ParseFile parses the control file at path. A missing file surfaces as an
// os.ErrNotExist-wrapped error so callers can distinguish it from malformed
// content.
func ParseFile(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	paragraphs, err := ParseParagraphs(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("parsing %s: %w: no paragraphs", path, ErrMalformed)
	}
	return paragraphs, nil
}
