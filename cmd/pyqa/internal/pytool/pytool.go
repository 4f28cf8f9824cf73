// Package pytool describes the external code-quality tools the runner
// shells out to. The tools are black boxes: this package only knows
// their names, the flags the project runs them with, and how to ask
// them for a version string.
package pytool

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bitfield/script"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/venv"
)

const (
	FormatterName = "autopep8"
	LinterName    = "pylint"
)

// Invocation is one planned tool run: executable name plus the full
// argument list, executed once in the project directory.
type Invocation struct {
	Tool string
	Args []string
}

// Formatter rewrites files under sourceDir in place, recursively,
// wrapping lines at lineLength columns.
func Formatter(sourceDir string, lineLength int) Invocation {
	return Invocation{
		Tool: FormatterName,
		Args: []string{
			"--in-place",
			"--recursive",
			"--max-line-length", strconv.Itoa(lineLength),
			sourceDir,
		},
	}
}

// Linter checks sourceDir recursively against the rules in rcFile.
func Linter(sourceDir, rcFile string) Invocation {
	return Invocation{
		Tool: LinterName,
		Args: []string{
			"--verbose",
			"--rcfile", rcFile,
			sourceDir,
		},
	}
}

// Version asks the tool at path for its version string.
func Version(path string) (string, error) {
	out, err := script.Exec(path + " --version").String()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Report writes the resolved executable path and version of the
// invocation's tool to w, returning the path when resolution
// succeeded. Failures are reported on w too; the sequence is
// best-effort and the caller proceeds either way.
func Report(w io.Writer, env venv.Env, inv Invocation) (string, bool) {
	path, err := env.Look(inv.Tool)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", inv.Tool, err)
		return "", false
	}

	version, err := Version(path)
	if err != nil {
		fmt.Fprintf(w, "%s: %s (version unavailable: %v)\n", inv.Tool, path, err)
		return path, true
	}

	fmt.Fprintf(w, "%s: %s (%s)\n", inv.Tool, path, version)
	return path, true
}
