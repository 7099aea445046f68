package llm

import (
	"context"
	"encoding/json"
)

// Mock is a deterministic offline client. It answers with a fenced JSON
// specification for a trivial markup diagram, which is enough to exercise
// the whole pipeline without a model.
type Mock struct{}

func (Mock) Generate(_ context.Context, _, user string) (string, error) {
	spec := map[string]string{
		"name":        "mock-diagram",
		"title":       "Mock Diagram",
		"description": user,
		"sourceCode":  "graph TD\n\tA[Request] --> B[Response]",
		"outputKind":  "markup",
	}

	data, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return "```json\n" + string(data) + "\n```", nil
}
