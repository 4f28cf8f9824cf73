package initwizard

import (
	"strconv"

	"github.com/foot4ever/pyqa/cmd/pyqa/internal/config"
)

// Result holds the wizard answers. Numeric answers stay strings until
// ToConfig so the form can round-trip user input verbatim.
type Result struct {
	ProjectIdent string
	SourceDir    string
	VenvDir      string
	LineLength   string
	RcFile       string
}

func DefaultResult(defaultIdent string) Result {
	return Result{
		ProjectIdent: defaultIdent,
		SourceDir:    config.DefaultSource,
		VenvDir:      config.DefaultVenv,
		LineLength:   strconv.Itoa(config.DefaultLineLength),
		RcFile:       config.DefaultRcFile,
	}
}

// ToConfig converts validated wizard answers into a config file.
func (r Result) ToConfig() (config.File, error) {
	lineLength, err := strconv.Atoi(r.LineLength)
	if err != nil {
		return config.File{}, err
	}

	return config.File{
		Version:    "1",
		Project:    r.ProjectIdent,
		Source:     r.SourceDir,
		Venv:       r.VenvDir,
		LineLength: lineLength,
		RcFile:     r.RcFile,
	}, nil
}
