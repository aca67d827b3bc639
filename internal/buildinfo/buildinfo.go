// Package buildinfo provides the build metadata embedded in the binary.
package buildinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Unknown is reported for a value that is missing, blank or unreadable.
const Unknown = "unknown"

// Info is the decoded build metadata.
type Info struct {
	SysMLVersion string `yaml:"sysml_version"`
}

// Compile compiles the metadata schema found in fsys.
func Compile(fsys fs.FS) (*jsonschema.Schema, error) {
	data, err := fs.ReadFile(fsys, SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("read metadata schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal metadata schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(SchemaFile, doc); err != nil {
		return nil, fmt.Errorf("add metadata schema resource: %w", err)
	}

	schema, err := compiler.Compile(SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("compile metadata schema: %w", err)
	}
	return schema, nil
}

// Decode validates YAML metadata against schema and decodes it.
func Decode(data []byte, schema *jsonschema.Schema) (*Info, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// The schema validator works on JSON values, so YAML scalars such as
	// timestamps are normalized through a JSON round trip first.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("metadata is not representable as JSON: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("metadata is not representable as JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("metadata validation failed: %w", err)
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &info, nil
}

// Load reads and validates the metadata in fsys.
func Load(fsys fs.FS) (*Info, error) {
	schema, err := Compile(fsys)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, MetadataFile)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return Decode(data, schema)
}

// SysMLVersion returns the SysML release recorded in the embedded metadata,
// or Unknown when it cannot be determined.
func SysMLVersion() string {
	info, err := Load(FS)
	if err != nil {
		return Unknown
	}
	return info.Version()
}

// Version returns the trimmed SysML version, or Unknown when it is blank.
func (i *Info) Version() string {
	if i == nil {
		return Unknown
	}
	v := strings.TrimSpace(i.SysMLVersion)
	if v == "" {
		return Unknown
	}
	return v
}
