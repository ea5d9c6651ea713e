package vmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseRecords decodes a record document (YAML, or JSON which YAML accepts)
// and validates it with FromObject.
func ParseRecords(data []byte) (*Data, error) {
	var obj any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return FromObject(obj)
}

// LoadRecords reads and validates a record document from disk.
func LoadRecords(path string) (*Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return ParseRecords(data)
}
