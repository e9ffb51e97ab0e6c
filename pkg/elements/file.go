package elements

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by ReadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported element table format")

// tableFile is the on-disk layout shared by the YAML and TOML formats.
//
// YAML:
//
//	elements:
//	  - symbol: D
//	    name: Deuterium
//	    atomic_mass: 2.014
//
// TOML:
//
//	[[elements]]
//	symbol = "D"
//	name = "Deuterium"
//	atomic_mass = 2.014
type tableFile struct {
	Elements []Element `yaml:"elements" toml:"elements"`
}

// ReadFile reads element definitions from a YAML (.yaml, .yml) or TOML
// (.toml) file. The returned elements are validated but not merged into any
// table; use Table.Extend or NewTable.
func ReadFile(path string) ([]Element, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read element table: %w", err)
	}

	elems, err := Decode(content, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elems, nil
}

// Decode parses element definitions from content. ext selects the format
// and must be one of ".yaml", ".yml", or ".toml".
func Decode(content []byte, ext string) ([]Element, error) {
	var file tableFile

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".toml":
		meta, err := toml.Decode(string(content), &file)
		if err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse TOML: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .yml or .toml)", ErrUnsupportedFormat, ext)
	}

	for _, elem := range file.Elements {
		if err := validateElement(elem); err != nil {
			return nil, err
		}
	}

	return file.Elements, nil
}

// Load builds a table from the default table extended with the elements in
// path. An empty path returns Default().
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	elems, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Default().Extend(elems)
}
