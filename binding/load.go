package binding

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"

	"github.com/dennwc/genbind/errors"
)

// Format is the encoding of a binding file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.WithHint(
		errors.Newf("unknown binding file extension %q", filepath.Ext(path)),
		"use .toml, .yaml or .yml",
	)
}

// Load reads and validates the binding file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read binding file %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "binding file %s", path)
	}
	return f, nil
}

// Decode decodes and validates a binding file. Unknown keys are rejected.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "invalid TOML"), ErrMalformedBinding)
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, errors.WithDetailf(
				errors.Wrapf(ErrMalformedBinding, "unknown keys: %s", strings.Join(keys, ", ")),
				"decoded keys: %d", len(md.Keys()),
			)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Mark(errors.Wrap(err, "invalid YAML"), ErrMalformedBinding)
		}
	default:
		return nil, errors.AssertionFailedf("unknown binding format %d", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Dump writes a readable tree of the binding file.
func Dump(w io.Writer, f *File) error {
	_, err := pretty.Fprintf(w, "%# v\n", f)
	return err
}
