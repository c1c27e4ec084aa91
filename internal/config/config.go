// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings. It is built once per run and passed
// explicitly to the components that need it.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Tags    TagsConfig    `yaml:"tags"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds output and scene traversal settings.
type ExportConfig struct {
	ExtensionName         string            `yaml:"extension_name"`         // Game extension folder name
	ConnectionsCollection string            `yaml:"connections_collection"` // Collection holding connection markers
	PartsCollection       string            `yaml:"parts_collection"`       // Collection holding mesh parts
	SizeClasses           map[string]string `yaml:"size_classes"`           // Ship class -> asset size folder
	OutputDir             string            `yaml:"output_dir"`             // Overrides the project directory
	FPSOverride           float64           `yaml:"fps_override"`           // Overrides the scene frame rate when > 0
	ValidateParents       bool              `yaml:"validate_parents"`       // Reject parents outside the export set
}

// TagsConfig lists the boolean flags turned into connection tags, in output
// order, per property group.
type TagsConfig struct {
	Geometry   []string `yaml:"geometry"`   // GeometryTags group, mesh parts
	Connection []string `yaml:"connection"` // ConnectionTags group, markers
	Symmetry   []string `yaml:"symmetry"`   // Symmetry group, markers
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"` // Relative paths are resolved against the project directory
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			ExtensionName:         "x3_ships",
			ConnectionsCollection: "connections",
			PartsCollection:       "parts",
			SizeClasses: map[string]string{
				"ship_s": "size_s",
			},
		},
		Tags: TagsConfig{
			Geometry: []string{
				"animation",
				"detail_l",
				"detail_m",
				"detail_s",
				"detail_xl",
				"forceoutline",
				"nocollision",
				"noshadow",
				"part",
				"platformcollision",
			},
			Connection: []string{
				"cockpit",
				"component",
				"dock",
				"engine",
				"part",
				"shield",
				"ship_s",
				"thruster",
				"turret",
				"weapon",
			},
			Symmetry: []string{
				"symmetry",
				"symmetry_1",
				"symmetry_2",
				"symmetry_left",
				"symmetry_right",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "log.txt",
		},
	}
}
