//go:build !windows && !plan9 && !js

package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

func TestIsATTY(t *testing.T) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptm.Close()
	defer pts.Close()

	if !IsATTY(pts.Fd()) {
		t.Errorf("IsATTY(pty) -> false, want true")
	}

	f, err := os.CreateTemp(t.TempDir(), "file")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f.Fd()) {
		t.Errorf("IsATTY(regular file) -> true, want false")
	}
}

func TestNotifySignals(t *testing.T) {
	ch, stop := NotifySignals()
	defer stop()
	if cap(ch) != sigsChanBufferSize {
		t.Errorf("got channel with capacity %d", cap(ch))
	}
}
