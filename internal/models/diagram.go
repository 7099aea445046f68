package models

import "strings"

// OutputKind defines what the diagram source is: an executable program
// (e.g. a Python diagrams script) or a declarative markup document.
type OutputKind string

const (
	KindProgram OutputKind = "program"
	KindMarkup  OutputKind = "markup"
)

// Valid reports whether the kind is one of the supported values.
func (k OutputKind) Valid() bool {
	return k == KindProgram || k == KindMarkup
}

// SourceExt returns the source file extension for the kind.
func (k OutputKind) SourceExt() string {
	if k == KindMarkup {
		return "mmd"
	}
	return "py"
}

// ArtifactExt returns the rendered artifact extension for the kind.
func (k OutputKind) ArtifactExt() string {
	if k == KindMarkup {
		return "svg"
	}
	return "png"
}

// Diagram is the recovered specification of one diagram
type Diagram struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SourceCode  string     `json:"sourceCode"`
	Style       string     `json:"style,omitempty"`
	Quality     string     `json:"quality,omitempty"`
	OutputKind  OutputKind `json:"outputKind"`
}

// SourceFile returns the fixed workspace filename for the staged source.
func (d Diagram) SourceFile() string {
	return "source." + d.OutputKind.SourceExt()
}

// ArtifactFile returns the fixed workspace filename for the rendered artifact.
func (d Diagram) ArtifactFile() string {
	return "artifact." + d.OutputKind.ArtifactExt()
}

// Slugify converts a free-form name into a filesystem-safe slug.
// Non-alphanumeric runs collapse to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
