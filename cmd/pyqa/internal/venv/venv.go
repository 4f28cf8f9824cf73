// Package venv resolves tools inside a Python virtual environment.
//
// Activation here means what the venv activate scripts do for a shell:
// the environment's bin directory is put in front of PATH and
// VIRTUAL_ENV points at the environment root, so spawned tools resolve
// to the versions installed in the environment rather than any
// system-wide install.
package venv

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/foot4ever/pyqa/cmd/pyqa/internal/cmdexec"
)

// Env references a virtual environment by its root directory.
type Env struct {
	root string
}

// New returns an Env rooted at dir. The directory is not required to
// exist; callers check Exists and fall back to the ambient PATH.
func New(dir string) Env {
	return Env{root: dir}
}

func (e Env) Root() string {
	return e.root
}

// BinDir returns the directory holding the environment's executables.
func (e Env) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.root, "Scripts")
	}
	return filepath.Join(e.root, "bin")
}

// Exists reports whether the environment's bin directory is present.
func (e Env) Exists() bool {
	info, err := os.Stat(e.BinDir())
	return err == nil && info.IsDir()
}

// Look resolves a tool name to an executable path, preferring the
// environment's bin directory and falling back to the ambient PATH.
func (e Env) Look(tool string) (string, error) {
	if e.Exists() {
		candidates := []string{tool}
		if runtime.GOOS == "windows" {
			candidates = []string{tool + ".exe", tool + ".bat", tool}
		}
		for _, name := range candidates {
			path := filepath.Join(e.BinDir(), name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", errors.Wrapf(err, "%s not found in %s or on PATH", tool, e.BinDir())
	}

	return path, nil
}

// Apply returns an executor whose spawned commands see the environment
// as activated. A non-existent environment leaves the executor as-is.
func Apply(x cmdexec.Executor, e Env) cmdexec.Executor {
	if !e.Exists() {
		return x
	}

	path := e.BinDir() + string(os.PathListSeparator) + os.Getenv("PATH")

	return x.
		WithEnv("PATH", path).
		WithEnv("VIRTUAL_ENV", e.root).
		WithEnv("PYTHONHOME", "")
}
