// Package catalog holds the static style and quality presets and builds
// the prompts sent to the model.
package catalog

import (
	"fmt"
	"strings"

	"github.com/pders01/diagen/internal/models"
)

// Style is one diagram style preset. The kind decides which interpreter
// renders the generated source.
type Style struct {
	Name     string            `json:"name"`
	Kind     models.OutputKind `json:"kind"`
	Summary  string            `json:"summary"`
	Guidance string            `json:"-"`
}

// Quality is one output-quality preset, expressed purely as prompt
// guidance.
type Quality struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Guidance string `json:"-"`
}

const (
	DefaultStyle   = "architecture"
	DefaultQuality = "standard"
)

var styles = []Style{
	{
		Name:     "architecture",
		Kind:     models.KindProgram,
		Summary:  "Cloud/system architecture rendered from a Python diagrams script",
		Guidance: "Write a Python script using the `diagrams` library. Group related nodes into Clusters and use provider-specific node classes where they fit.",
	},
	{
		Name:     "network",
		Kind:     models.KindProgram,
		Summary:  "Network topology rendered from a Python diagrams script",
		Guidance: "Write a Python script using the `diagrams` library with generic network nodes (routers, switches, firewalls) and labeled edges.",
	},
	{
		Name:     "flowchart",
		Kind:     models.KindMarkup,
		Summary:  "Process flowchart in Mermaid markup",
		Guidance: "Write a Mermaid `flowchart TD` document. Use decision diamonds for branches and keep node labels short.",
	},
	{
		Name:     "sequence",
		Kind:     models.KindMarkup,
		Summary:  "Interaction sequence in Mermaid markup",
		Guidance: "Write a Mermaid `sequenceDiagram` document. Name participants after the systems in the description and show the message order explicitly.",
	},
	{
		Name:     "mindmap",
		Kind:     models.KindMarkup,
		Summary:  "Topic mindmap in Mermaid markup",
		Guidance: "Write a Mermaid `mindmap` document with the central topic at the root and at most three levels of depth.",
	},
}

var qualities = []Quality{
	{
		Name:     "draft",
		Summary:  "Minimal structure, fastest to read",
		Guidance: "Keep the diagram minimal: main components only, no styling, at most eight nodes.",
	},
	{
		Name:     "standard",
		Summary:  "Balanced detail",
		Guidance: "Cover every component mentioned in the description with clear labels and sensible grouping.",
	},
	{
		Name:     "detailed",
		Summary:  "Exhaustive, annotated",
		Guidance: "Cover all components plus their secondary dependencies. Annotate edges with protocols or data flowing across them.",
	},
}

// Styles returns all style presets.
func Styles() []Style {
	return styles
}

// Qualities returns all quality presets.
func Qualities() []Quality {
	return qualities
}

// LookupStyle resolves a style preset by name.
func LookupStyle(name string) (Style, error) {
	for _, s := range styles {
		if s.Name == name {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("unknown style %q (see `diagen styles`)", name)
}

// LookupQuality resolves a quality preset by name.
func LookupQuality(name string) (Quality, error) {
	for _, q := range qualities {
		if q.Name == name {
			return q, nil
		}
	}
	return Quality{}, fmt.Errorf("unknown quality %q (see `diagen styles`)", name)
}

// BuildPrompt produces the system and user prompts for one generation.
// The response contract matches what the recovery parser expects.
func BuildPrompt(description string, style Style, quality Quality) (system, user string) {
	var sb strings.Builder
	sb.WriteString("You are a diagram author. Respond with a single JSON object and nothing else.\n")
	sb.WriteString("The object must have exactly these fields:\n")
	sb.WriteString("- name: a short lowercase slug for the diagram\n")
	sb.WriteString("- title: a human-readable title\n")
	sb.WriteString("- description: one or two sentences on what the diagram shows\n")
	sb.WriteString("- sourceCode: the complete diagram source\n")
	sb.WriteString(fmt.Sprintf("- outputKind: the literal string %q\n", style.Kind))
	sb.WriteString("Escape newlines and quotes inside sourceCode per the JSON string rules.\n")
	sb.WriteString("Style: " + style.Guidance + "\n")
	sb.WriteString("Quality: " + quality.Guidance + "\n")
	if style.Kind == models.KindProgram {
		sb.WriteString("The script must write its output to the file `artifact.png` in the working directory.\n")
	}

	user = fmt.Sprintf("Create a %s diagram for the following description:\n\n%s", style.Name, description)
	return sb.String(), user
}
