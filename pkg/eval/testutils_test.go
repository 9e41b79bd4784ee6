package eval_test

import "src.rambutan.dev/pkg/parse"

func srcForTest(code string) parse.Source {
	return parse.Source{Name: "[test]", Code: code}
}
