package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pders01/diagen/internal/models"
)

// Recovery failures are terminal: the raw response is handed back to the
// user for manual correction, never retried.
var (
	ErrNoJSONFound         = errors.New("no JSON object found in response")
	ErrFieldMarkerNotFound = errors.New("sourceCode field marker not found")
	ErrUnterminatedField   = errors.New("sourceCode field is not terminated")
	ErrStillInvalid        = errors.New("response is not valid JSON after repair")
	ErrMissingField        = errors.New("required field missing")
)

// codeField is the one field models routinely break: they emit literal
// newlines and quotes inside its value instead of JSON escapes.
const codeField = "sourceCode"

// Recover extracts a diagram specification from a raw model response.
// It first attempts a strict JSON decode of the brace-delimited candidate;
// when that fails it re-escapes the sourceCode field by scanning for its
// true closing quote, then decodes the repaired text.
func Recover(raw string) (models.Diagram, error) {
	candidate, err := extractObject(raw)
	if err != nil {
		return models.Diagram{}, err
	}

	var d models.Diagram
	if err := json.Unmarshal([]byte(candidate), &d); err == nil {
		return validate(d)
	}

	repaired, err := repairCodeField(candidate)
	if err != nil {
		return models.Diagram{}, err
	}

	if err := json.Unmarshal([]byte(repaired), &d); err != nil {
		return models.Diagram{}, fmt.Errorf("%w: %v", ErrStillInvalid, err)
	}
	return validate(d)
}

// extractObject strips an optional markdown fence and returns the text
// from the first '{' through the last '}'.
func extractObject(raw string) (string, error) {
	s := stripFence(raw)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONFound
	}
	return s[start : end+1], nil
}

// stripFence removes a leading/trailing ``` marker, tolerating a language
// tag on the opening fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairCodeField locates the sourceCode value, finds its true closing
// quote, and splices a properly escaped version of the raw span back in.
//
// An unescaped quote terminates the value only when the remaining text,
// after leading whitespace, starts with '}' or ','. A quote that is part
// of the embedded code keeps the scan going. Known limitation: code whose
// last token is a string literal immediately followed by '}' or ',' can
// terminate the scan early.
func repairCodeField(s string) (string, error) {
	open, err := findValueStart(s, codeField)
	if err != nil {
		return "", err
	}

	closing := -1
	escaped := false
	for i := open; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			rest := strings.TrimLeft(s[i+1:], " \t\r\n")
			if strings.HasPrefix(rest, "}") || strings.HasPrefix(rest, ",") {
				closing = i
			}
		}
		if closing >= 0 {
			break
		}
	}
	if closing < 0 {
		return "", ErrUnterminatedField
	}

	return s[:open] + escapeValue(s[open:closing]) + s[closing:], nil
}

// findValueStart returns the index just past the opening quote of the
// named field's string value, tolerating whitespace around the colon.
func findValueStart(s, field string) (int, error) {
	marker := `"` + field + `"`
	at := strings.Index(s, marker)
	if at < 0 {
		return 0, ErrFieldMarkerNotFound
	}
	i := at + len(marker)
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ':' {
		return 0, ErrFieldMarkerNotFound
	}
	i++
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return 0, ErrFieldMarkerNotFound
	}
	return i + 1, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeValue(s string) string {
	return valueEscaper.Replace(s)
}

// validate normalizes the name into a slug and checks the required fields.
func validate(d models.Diagram) (models.Diagram, error) {
	d.Name = models.Slugify(d.Name)

	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"title", d.Title},
		{"description", d.Description},
		{codeField, d.SourceCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			return models.Diagram{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return d, nil
}
