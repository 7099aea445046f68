package sanitize

import "testing"

func TestSourceRewritesBreaksInsideLiterals(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"double quoted",
			"label = \"line1\nline2\"",
			"label = \"line1\\nline2\"",
		},
		{
			"single quoted",
			"label = 'line1\nline2'",
			"label = 'line1\\nline2'",
		},
		{
			"crlf",
			"label = \"a\r\nb\"",
			"label = \"a\\nb\"",
		},
		{
			"bare cr",
			"label = \"a\rb\"",
			"label = \"a\\nb\"",
		},
		{
			"breaks outside literals untouched",
			"a = 1\nb = \"x\"\nc = 2\n",
			"a = 1\nb = \"x\"\nc = 2\n",
		},
		{
			"escaped quote does not close literal",
			"s = \"he said \\\"hi\nthere\\\"\"",
			"s = \"he said \\\"hi\\nthere\\\"\"",
		},
		{
			"already escaped stays put",
			"s = \"a\\nb\"",
			"s = \"a\\nb\"",
		},
		{
			"unterminated literal still rewritten",
			"s = \"a\nb",
			"s = \"a\\nb",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Source(tc.in)
			if got != tc.want {
				t.Errorf("Source(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSourceIdempotent(t *testing.T) {
	inputs := []string{
		"label = \"line1\nline2\"",
		"x = 'a\nb' + \"c\nd\"",
		"plain code\nno literals",
		"mixed = \"already\\nescaped and\nnot\"",
	}

	for _, in := range inputs {
		once := Source(in)
		twice := Source(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}
