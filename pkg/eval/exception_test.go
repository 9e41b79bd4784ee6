package eval

import (
	"errors"
	"strings"
	"testing"

	"src.rambutan.dev/pkg/diag"
)

func TestException_Show(t *testing.T) {
	src := &diag.Source{Name: "[test]", Code: "(a (b))"}
	err := wrapAt(errors.New("boom"), src, diag.Ranging{From: 3, To: 6})
	show := err.(*Exception).Show("")
	if !strings.Contains(show, "boom") || !strings.Contains(show, "[test]:1:4") {
		t.Errorf("Show() -> %q", show)
	}
	if strings.Contains(show, "Traceback") {
		t.Errorf("Show() with one entry has a traceback: %q", show)
	}

	err = wrapAt(err, src, diag.Ranging{From: 0, To: 7})
	show = err.(*Exception).Show("")
	if !strings.Contains(show, "Traceback:") || !strings.Contains(show, "[test]:1:1") {
		t.Errorf("Show() -> %q", show)
	}
}

func TestWrapAt_LimitsStackTrace(t *testing.T) {
	src := &diag.Source{Name: "[test]", Code: "x"}
	err := errors.New("boom")
	for i := 0; i < maxStackTrace+10; i++ {
		err = wrapAt(err, src, diag.Ranging{From: 0, To: 1})
	}
	exc := err.(*Exception)
	if len(exc.StackTrace) != maxStackTrace || exc.Dropped != 10 {
		t.Errorf("got %d entries and %d dropped", len(exc.StackTrace), exc.Dropped)
	}
	if Reason(err).Error() != "boom" {
		t.Errorf("Reason(err) -> %v", Reason(err))
	}
}

func TestWrapAt_SkipsRuntimeForms(t *testing.T) {
	err := wrapAt(errors.New("boom"), nil, diag.NoRanging)
	if exc := err.(*Exception); len(exc.StackTrace) != 0 {
		t.Errorf("got stack trace %v for a form without source", exc.StackTrace)
	}
}
