package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fileLoader
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fileLoader{
		fs:       fs,
		path:     path,
		decode:   yaml.Unmarshal,
		position: yamlPosition,
	}}
}

// yamlPosition extracts the line from messages of the form
// "yaml: line N: ...". yaml.v3 does not report columns.
func yamlPosition(err error) (int, int) {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr != nil {
		return 0, 0
	}
	return line, 0
}
