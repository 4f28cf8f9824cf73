// Package pause blocks until the user acknowledges the run, so a
// console window opened by double-click does not close before the tool
// output can be read.
package pause

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Wait prints a prompt to out and blocks until one byte arrives on in.
// When in is a terminal it is switched to raw mode so a single
// keypress suffices; otherwise one byte is read as-is, and a closed
// reader returns immediately.
func Wait(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Press any key to continue...")
	defer fmt.Fprintln(out)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err == nil {
			defer term.Restore(int(f.Fd()), state)
		}
	}

	buf := make([]byte, 1)
	if _, err := in.Read(buf); err != nil && err != io.EOF {
		return err
	}

	return nil
}
