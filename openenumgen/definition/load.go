package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/broady/openenum/openenumgen/ir"
)

// Format is a definition file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported definition file extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Load reads, decodes and validates a definition file.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	for i := range f.Enums {
		f.Enums[i].Source.File = path
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Decode decodes a definition file from r. It does not validate.
func Decode(r io.Reader, format Format) (*File, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	case FormatTOML:
		return decodeTOML(r)
	case FormatJSON:
		return decodeJSON(r)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
}

func decodeYAML(r io.Reader) (*File, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty definition file")
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	// Attach line numbers from the node tree so errors can point at the enum.
	if items := yamlEnumNodes(&doc); len(items) == len(f.Enums) {
		for i, n := range items {
			f.Enums[i].Source = ir.Source{Line: n.Line, Column: n.Column}
		}
	}
	return &f, nil
}

// yamlEnumNodes returns the sequence items under the top-level "enums" key.
func yamlEnumNodes(doc *yaml.Node) []*yaml.Node {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "enums" && root.Content[i+1].Kind == yaml.SequenceNode {
			return root.Content[i+1].Content
		}
	}
	return nil
}

func decodeTOML(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decode toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

func decodeJSON(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &f, nil
}
