package testutil

import "testing"

var dedentTests = []struct {
	in   string
	want string
}{
	{"", ""},
	{"  a\n  b", "a\nb"},
	{"\n\t\tfoo\n\t\t  bar\n", "foo\n  bar\n"},
	{"  a\n\n    b", "a\n\n  b"},
	{" x\n  y", "x\n y"},
}

func TestDedent(t *testing.T) {
	for _, test := range dedentTests {
		if got := Dedent(test.in); got != test.want {
			t.Errorf("Dedent(%q) -> %q, want %q", test.in, got, test.want)
		}
	}
}
