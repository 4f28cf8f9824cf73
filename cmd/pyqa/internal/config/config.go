package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const FileName = ".pyqa.yml"

// Defaults mirror the original run_code_analysis script: format and
// lint everything under src/ with tools from the project venv.
const (
	DefaultSource     = "src"
	DefaultVenv       = "venv"
	DefaultLineLength = 200
	DefaultRcFile     = ".pylintrc"
)

// File is the on-disk shape of .pyqa.yml. Zero-valued fields fall back
// to the defaults above when loaded.
type File struct {
	Version    string `yaml:"version" validate:"required,oneof=1"`
	Project    string `yaml:"project,omitempty"`
	Source     string `yaml:"source,omitempty"`
	Venv       string `yaml:"venv,omitempty"`
	LineLength int    `yaml:"line_length,omitempty" validate:"omitempty,min=40,max=1000"`
	RcFile     string `yaml:"rcfile,omitempty"`
}

func Default() File {
	return File{
		Version:    "1",
		Source:     DefaultSource,
		Venv:       DefaultVenv,
		LineLength: DefaultLineLength,
		RcFile:     DefaultRcFile,
	}
}

func (f *File) applyDefaults() {
	if f.Source == "" {
		f.Source = DefaultSource
	}
	if f.Venv == "" {
		f.Venv = DefaultVenv
	}
	if f.LineLength == 0 {
		f.LineLength = DefaultLineLength
	}
	if f.RcFile == "" {
		f.RcFile = DefaultRcFile
	}
}

type Loader interface {
	Load(path string) (File, error)
}

type Writer interface {
	Write(w io.Writer, f File) error
}

type Finder interface {
	Find(startDir string) (f File, projectDir string, err error)
}

type yamlLoader struct {
	validate *validator.Validate
}

func NewLoader() Loader {
	return &yamlLoader{
		validate: validator.New(),
	}
}

func (l *yamlLoader) Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "failed to read config file")
	}

	dec := yaml.NewDecoder(
		bytes.NewReader(data),
		yaml.Validator(l.validate),
		yaml.Strict(),
	)

	var f File
	if err := dec.Decode(&f); err != nil {
		return File{}, errors.Wrap(err, "failed to parse config file")
	}

	f.applyDefaults()

	return f, nil
}

type yamlWriter struct{}

func NewWriter() Writer {
	return &yamlWriter{}
}

func (w *yamlWriter) Write(wr io.Writer, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if _, err := wr.Write(data); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

type finder struct {
	loader Loader
}

func NewFinder(loader Loader) Finder {
	return &finder{loader: loader}
}

func (f *finder) Find(startDir string) (File, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			file, err := f.loader.Load(configPath)
			if err != nil {
				return File{}, "", err
			}
			return file, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return File{}, "", errors.Newf(
				"config file %s not found (searched from %s to root)",
				FileName, startDir,
			)
		}
		dir = parent
	}
}

func WriteToFile(dir string, f File, w Writer) error {
	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer file.Close()

	return w.Write(file, f)
}
