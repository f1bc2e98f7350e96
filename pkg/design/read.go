package design

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/barnframe/pkg/errors"
)

// Read decodes a design from r, normalizes it and validates it.
//
// Unknown fields are rejected in every format so that typos such as
// "x_ofset" do not silently fall back to zero.
func Read(r io.Reader, f Format) (*Design, error) {
	var d Design
	if err := decode(r, f, &d); err != nil {
		return nil, err
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Parse is Read over an in-memory document.
func Parse(data []byte, f Format) (*Design, error) {
	return Read(bytes.NewReader(data), f)
}

// ReadFile reads a design from path, choosing the format by extension.
func ReadFile(path string) (*Design, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "design file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer file.Close()

	d, err := Read(file, f)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidInput
		}
		return nil, errors.Wrap(code, err, "%s", path)
	}
	return d, nil
}

func decode(r io.Reader, f Format, d *Design) error {
	f, err := ParseFormat(string(f))
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(d)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(d)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown field %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(d)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}
