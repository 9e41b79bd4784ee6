package progtest

import (
	"io"
	"os"
	"testing"

	"src.rambutan.dev/pkg/prog"
)

// Verify we don't deadlock if more output is written to stdout than can be
// buffered by a pipe.
func TestOutputCaptureDoesNotDeadlock(t *testing.T) {
	Test(t, noisyProgram{},
		ThatRambutan().WritesStdoutContaining("hello"),
	)
}

func TestStdinIsFed(t *testing.T) {
	Test(t, echoProgram{},
		ThatRambutan().WithStdin("(+ 1 2)").WritesStdout("(+ 1 2)"),
		ThatRambutan().WritesStdout(""),
	)
}

type noisyProgram struct{}

func (noisyProgram) RegisterFlags(f *prog.FlagSet) {}

func (noisyProgram) Run(fds [3]*os.File, args []string) error {
	// Pipes typically buffer 8 to 128 KiB.
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i := 0; i < 128*1024/len(bytes); i++ {
		fds[1].Write(bytes)
	}
	fds[1].WriteString("hello")
	return nil
}

type echoProgram struct{}

func (echoProgram) RegisterFlags(f *prog.FlagSet) {}

func (echoProgram) Run(fds [3]*os.File, args []string) error {
	_, err := io.Copy(fds[1], fds[0])
	return err
}
