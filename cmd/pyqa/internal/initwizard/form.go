package initwizard

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
)

type FormBuilder interface {
	Build(defaultIdent string, result *Result) *huh.Form
}

type formBuilder struct{}

func NewFormBuilder() FormBuilder {
	return &formBuilder{}
}

func (b *formBuilder) Build(defaultIdent string, result *Result) *huh.Form {
	*result = DefaultResult(defaultIdent)
	return huh.NewForm(
		huh.NewGroup(
			b.projectIdentInput(&result.ProjectIdent),
			b.sourceDirInput(&result.SourceDir),
			b.venvDirInput(&result.VenvDir),
			b.lineLengthInput(&result.LineLength),
			b.rcFileInput(&result.RcFile),
		),
	)
}

func (b *formBuilder) projectIdentInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Project identifier").
		Description("Short name shown in the run banner").
		Value(value).
		Validate(ValidateProjectIdent)
}

func (b *formBuilder) sourceDirInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Source directory").
		Description("Directory the formatter and linter run over, relative to the project root").
		Value(value).
		Validate(ValidateRelPath)
}

func (b *formBuilder) venvDirInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Virtualenv directory").
		Description("Virtual environment the tools are installed in, relative to the project root").
		Value(value).
		Validate(ValidateRelPath)
}

func (b *formBuilder) lineLengthInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Maximum line length").
		Description("Passed to the formatter as --max-line-length").
		Value(value).
		Validate(ValidateLineLength)
}

func (b *formBuilder) rcFileInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Pylint rcfile").
		Description("Rule configuration file passed to pylint via --rcfile").
		Value(value).
		Validate(ValidateRelPath)
}

func ValidateProjectIdent(s string) error {
	if s == "" {
		return errors.New("project identifier is required")
	}
	if len(s) > 30 {
		return errors.New("project identifier must be 30 characters or less")
	}
	for _, c := range s {
		if !IsValidIdentChar(c) {
			return errors.Newf("invalid character %q: use lowercase letters, numbers, and hyphens only", c)
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return errors.New("project identifier cannot start or end with a hyphen")
	}
	return nil
}

func IsValidIdentChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}

func ValidateRelPath(s string) error {
	if s == "" {
		return errors.New("a path is required")
	}
	if filepath.IsAbs(s) {
		return errors.New("path must be relative to the project root")
	}
	clean := filepath.Clean(s)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errors.New("path cannot point outside the project root")
	}
	return nil
}

func ValidateLineLength(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("line length must be a number")
	}
	if n < 40 || n > 1000 {
		return errors.New("line length must be between 40 and 1000")
	}
	return nil
}
