package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialisation format for form definition documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the document format from a file extension. JSON is the
// default because the persistence API speaks JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseDefinition decodes a definition document and validates it.
func ParseDefinition(data []byte, format Format) (FormDefinition, error) {
	var def FormDefinition
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return FormDefinition{}, fmt.Errorf("schema: parse yaml definition: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &def); err != nil {
			return FormDefinition{}, fmt.Errorf("schema: parse json definition: %w", err)
		}
	default:
		return FormDefinition{}, fmt.Errorf("schema: unsupported format %q", format)
	}
	if err := def.Validate(); err != nil {
		return FormDefinition{}, err
	}
	return def, nil
}

// EncodeDefinition serialises a definition in the requested format.
func EncodeDefinition(def FormDefinition, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("schema: encode yaml definition: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("schema: encode json definition: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("schema: unsupported format %q", format)
	}
}

// LoadDefinition reads and parses a definition document from disk, inferring
// the format from the file extension.
func LoadDefinition(path string) (FormDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormDefinition{}, fmt.Errorf("schema: read definition %q: %w", path, err)
	}
	return ParseDefinition(data, FormatForPath(path))
}

// SaveDefinition writes a definition document to disk, inferring the format
// from the file extension.
func SaveDefinition(path string, def FormDefinition) error {
	data, err := EncodeDefinition(def, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schema: write definition %q: %w", path, err)
	}
	return nil
}
