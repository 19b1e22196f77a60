package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configHeader = `# MoodFlow Configuration File
#
# Every setting can be overridden with an environment variable:
# MOODFLOW_<SECTION>_<KEY>, for example MOODFLOW_LOGGING_LEVEL=DEBUG.
`

// sectionComments annotate the top-level keys of the generated file.
var sectionComments = map[string]string{
	"logging":  "Logging: level (DEBUG, INFO, WARN, ERROR), format (text, json), output (stdout, stderr or a file path)",
	"server":   "Prometheus metrics endpoint, disabled by default",
	"storage":  "Journal storage: type is filesystem, memory, badger or s3; only the matching section is used",
	"adapters": "Network front ends; workers bounds how many requests are handled at once",
}

// InitConfig writes the default configuration to the default path and returns
// that path. An existing file is only replaced when force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes the default configuration to path.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	data, err := GenerateDefaultYAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateDefaultYAML renders the default configuration as commented YAML.
func GenerateDefaultYAML() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(GetDefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}

	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if comment, ok := sectionComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = comment
		}
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}

	return append([]byte(configHeader+"\n"), out...), nil
}
