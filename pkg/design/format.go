package design

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/barnframe/pkg/errors"
)

// Format is a design serialization format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat resolves a format name, accepting "yml" for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatJSON, FormatTOML, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "format", s, "json", "toml", "yaml")
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer design format from %q (use .json, .toml or .yaml)", path)
	}
	return ParseFormat(ext)
}
