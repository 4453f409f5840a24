package cli

import (
	"fmt"
	"io"
	"os"
)

type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		out:          os.Stderr,
		errOut:       os.Stderr,
		enableColors: isTerminal(os.Stderr),
	}
}

// NewWriterOutput writes every message to w without colors.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{out: w, errOut: w}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) color(code, text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	fmt.Fprintf(o.out, "  %s%s\n", o.color("32", "✓ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintWarning(msg string, args ...any) {
	fmt.Fprintf(o.out, "  %s%s\n", o.color("33", "⚠ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	fmt.Fprintf(o.errOut, "  %s%s\n", o.color("31", "✗ "), fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", o.color("90", path))
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
