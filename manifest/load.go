package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the graph description at path. The format follows the file extension:
// .yaml and .yml for YAML, .hcl for HCL.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph description: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a graph description. filename selects the format and appears in errors.
func Parse(data []byte, filename string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return parseYAML(data, filename)
	case ".hcl":
		return parseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// LoadGraph reads and builds the graph description at path.
func LoadGraph(path string) (*Graph, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// IsSupported reports whether path has an extension Parse understands.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".hcl":
		return true
	}
	return false
}

func parseYAML(data []byte, filename string) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrNoRoot, filename)
		}
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	return &doc, nil
}
