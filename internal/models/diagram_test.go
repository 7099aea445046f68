package models

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"web-stack", "web-stack"},
		{"My Cool Diagram!", "my-cool-diagram"},
		{"  spaced  out  ", "spaced-out"},
		{"___", ""},
		{"Üml@ut's", "ml-ut-s"},
		{"UPPER", "upper"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOutputKindFiles(t *testing.T) {
	program := Diagram{Name: "x", OutputKind: KindProgram}
	if program.SourceFile() != "source.py" || program.ArtifactFile() != "artifact.png" {
		t.Errorf("program files = %s, %s", program.SourceFile(), program.ArtifactFile())
	}

	markup := Diagram{Name: "x", OutputKind: KindMarkup}
	if markup.SourceFile() != "source.mmd" || markup.ArtifactFile() != "artifact.svg" {
		t.Errorf("markup files = %s, %s", markup.SourceFile(), markup.ArtifactFile())
	}

	if OutputKind("pdf").Valid() {
		t.Error("unknown kind reported valid")
	}
}
