package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Load reads Params from a .yaml, .yml or .toml file.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, errors.NewValidationError("config", "unsupported file extension", ext)
	}
}

// ParseYAML decodes a flat YAML mapping into Params.
func ParseYAML(data []byte) (Params, error) {
	p := Params{}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}
	return p, nil
}

// ParseTOML decodes a TOML document into Params.
func ParseTOML(data []byte) (Params, error) {
	p := Params{}
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "parse toml")
	}
	return p, nil
}
