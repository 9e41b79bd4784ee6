package logutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(nil) })
	logger := GetLogger("[test] ")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Println("hello")
	if !strings.Contains(buf.String(), "[test] ") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("got log output %q, want prefix and message", buf.String())
	}

	// Loggers created after SetOutput also use the new output.
	GetLogger("[later] ").Println("world")
	if !strings.Contains(buf.String(), "[later] ") {
		t.Errorf("got log output %q, want output of later logger", buf.String())
	}

	buf.Reset()
	SetOutput(nil)
	logger.Println("dropped")
	if buf.Len() != 0 {
		t.Errorf("got log output %q after SetOutput(nil), want none", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(nil) })
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	GetLogger("[file] ").Println("to file")
	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[file] ") {
		t.Errorf("log file contains %q, want the logged line", content)
	}

	if err := SetOutputFile(filepath.Join(fname, "not-a-dir", "log")); err == nil {
		t.Errorf("SetOutputFile with bad path returned nil error")
	}
}
