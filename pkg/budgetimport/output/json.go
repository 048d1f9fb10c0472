// Package output serializes import results and workbook descriptions.
package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Write serializes v to path, or to stdout when path is empty.
func Write(v any, path string, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
