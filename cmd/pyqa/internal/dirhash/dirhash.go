// Package dirhash computes a content-based hash of a source tree. The
// runner hashes the tree before and after the formatter pass to tell
// the user whether anything was actually rewritten.
//
// Exclusions use dockerignore-style patterns: built-in defaults for
// Python build artifacts, plus an optional .pyqaignore file in the
// hashed directory.
package dirhash

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/moby/patternmatcher"
)

// IgnoreFileName is read from the root of the hashed directory.
const IgnoreFileName = ".pyqaignore"

// defaultPatterns excludes interpreter droppings that change without
// any source edit, which would make the before/after comparison lie.
var defaultPatterns = []string{
	"**/__pycache__",
	"**/*.pyc",
	"**/*.pyo",
	".git",
	".mypy_cache",
	".pytest_cache",
}

// Hasher computes a content-based hash of a directory.
type Hasher struct {
	extraPatterns  []string
	truncateLength int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithExtraPatterns adds exclusion patterns on top of the defaults and
// the ignore file.
func WithExtraPatterns(patterns ...string) Option {
	return func(h *Hasher) {
		h.extraPatterns = append(h.extraPatterns, patterns...)
	}
}

// WithTruncateLength sets the hash output length (0 for full hash).
func WithTruncateLength(n int) Option {
	return func(h *Hasher) {
		h.truncateLength = n
	}
}

// New creates a new Hasher with the given options.
func New(opts ...Option) *Hasher {
	h := &Hasher{
		truncateLength: 12,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash computes the content hash of dir.
func (h *Hasher) Hash(dir string) (string, error) {
	matcher, err := h.loadPatterns(dir)
	if err != nil {
		return "", err
	}

	files, err := h.collectFiles(dir, matcher)
	if err != nil {
		return "", err
	}

	return h.hashFiles(dir, files)
}

// CollectedFiles returns the list of files that would be hashed.
func (h *Hasher) CollectedFiles(dir string) ([]string, error) {
	matcher, err := h.loadPatterns(dir)
	if err != nil {
		return nil, err
	}

	return h.collectFiles(dir, matcher)
}

// matcher pairs the compiled patterns with whether any of them negate:
// a matched directory can only be pruned wholesale when nothing below
// it could be re-included.
type matcher struct {
	pm          *patternmatcher.PatternMatcher
	hasNegation bool
}

func (h *Hasher) loadPatterns(dir string) (*matcher, error) {
	patterns := make([]string, 0, len(defaultPatterns)+len(h.extraPatterns))
	patterns = append(patterns, defaultPatterns...)
	patterns = append(patterns, h.extraPatterns...)

	filePatterns, err := readIgnoreFile(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns = append(patterns, filePatterns...)

	hasNegation := false
	for _, p := range patterns {
		if strings.HasPrefix(p, "!") {
			hasNegation = true
			break
		}
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile ignore patterns")
	}

	return &matcher{pm: pm, hasNegation: hasNegation}, nil
}

func (h *Hasher) collectFiles(dir string, m *matcher) ([]string, error) {
	parentMatchInfo := make(map[string]patternmatcher.MatchInfo)
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		isDir := d.IsDir()

		parentPath := filepath.Dir(relPath)
		if parentPath == "." {
			parentPath = ""
		}

		var parentInfo patternmatcher.MatchInfo
		if parentPath != "" {
			parentInfo = parentMatchInfo[parentPath]
		}

		matched, matchInfo, err := m.pm.MatchesUsingParentResults(relPath, parentInfo)
		if err != nil {
			return errors.Wrapf(err, "pattern match failed for %s", relPath)
		}

		if isDir {
			parentMatchInfo[relPath] = matchInfo
			if matched && !m.hasNegation {
				return filepath.SkipDir
			}
			return nil
		}

		if matched {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk directory")
	}

	sort.Strings(files)
	return files, nil
}

func (h *Hasher) hashFiles(dir string, files []string) (string, error) {
	hash := sha256.New()

	for _, relPath := range files {
		absPath := filepath.Join(dir, relPath)

		content, err := os.ReadFile(absPath)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", relPath)
		}

		hash.Write([]byte(relPath))
		hash.Write([]byte{0})
		hash.Write(content)
	}

	fullHash := fmt.Sprintf("%x", hash.Sum(nil))
	if h.truncateLength > 0 && len(fullHash) > h.truncateLength {
		return fullHash[:h.truncateLength], nil
	}
	return fullHash, nil
}

func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open %s", IgnoreFileName)
	}
	defer f.Close()

	return parsePatterns(f)
}

func parsePatterns(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
