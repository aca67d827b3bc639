package buildinfo

import "embed"

// FS contains the build metadata and its schema.
//
//go:embed windtrader.yaml windtrader.schema.json
var FS embed.FS

// File names inside FS.
const (
	MetadataFile = "windtrader.yaml"
	SchemaFile   = "windtrader.schema.json"
)
