package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Fixtures maps table names to their items
type Fixtures map[string][]Record

// ReadFixtures decodes a fixtures file, keeping numbers exact
func ReadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fixtures Fixtures
	if err := dec.Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return fixtures, nil
}
