package diag

import "testing"

var contextTests = []struct {
	name    string
	context *Context
	indent  string

	wantDescribe    string
	wantShow        string
	wantShowCompact string
}{
	{
		name:    "single-line culprit",
		context: contextInParen("[test]", "(log (bad))"),
		indent:  "_",

		wantDescribe:    "[test]:1:1",
		wantShow:        "[test]:1:1:\n_<(log (bad)>)",
		wantShowCompact: "[test]:1:1: <(log (bad)>)",
	},
	{
		name:    "culprit on second line",
		context: contextInParen("[test]", "x\n  (y)"),
		indent:  "",

		wantDescribe:    "[test]:2:3",
		wantShow:        "[test]:2:3:\n  <(y)>",
		wantShowCompact: "[test]:2:3:   <(y)>",
	},
	{
		name:    "multi-line culprit",
		context: contextInParen("[test]", "(a\nb)"),
		indent:  "_",

		wantDescribe:    "[test]:1:1",
		wantShow:        "[test]:1:1:\n_<(a>\n_<b)>",
		wantShowCompact: "[test]:1:1: <(a>\n_            <b)>",
	},
	{
		name: "trailing newline in culprit is removed",
		//                                 012345 6
		context: NewContext("[test]", "(log x\n", Ranging{5, 7}),

		wantDescribe:    "[test]:1:6",
		wantShow:        "[test]:1:6:\n(log <x>",
		wantShowCompact: "[test]:1:6: (log <x>",
	},
	{
		name:    "empty culprit",
		context: NewContext("[test]", "(log", Ranging{4, 4}),

		wantDescribe:    "[test]:1:5",
		wantShow:        "[test]:1:5:\n(log<^>",
		wantShowCompact: "[test]:1:5: (log<^>",
	},
	{
		name:    "unknown position",
		context: NewContext("[test]", "x", NoRanging),

		wantDescribe:    "[test], unknown position",
		wantShow:        "[test], unknown position",
		wantShowCompact: "[test], unknown position",
	},
	{
		name:    "invalid position",
		context: NewContext("[test]", "x", Ranging{2, 3}),

		wantDescribe:    "[test], invalid position 2-3",
		wantShow:        "[test], invalid position 2-3",
		wantShowCompact: "[test], invalid position 2-3",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.context.Describe(); got != test.wantDescribe {
				t.Errorf("Describe() -> %q, want %q", got, test.wantDescribe)
			}
			if got := test.context.Show(test.indent); got != test.wantShow {
				t.Errorf("Show() -> %q, want %q", got, test.wantShow)
			}
			if got := test.context.ShowCompact(test.indent); got != test.wantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", got, test.wantShowCompact)
			}
		})
	}
}
