package session

import (
	"encoding/json"
	"fmt"
	"os"

	mgmath "github.com/mgear-dev/mgear/pkg/math"
)

// Guide is a named world transform, the exchange format between the
// host and the standalone tooling.
type Guide struct {
	Name   string    `json:"name"`
	Matrix []float64 `json:"matrix"` // 16 doubles, row-major
}

// Position returns the translation row of the guide matrix.
func (g Guide) Position() mgmath.Vec3 {
	return mgmath.Vec3{X: g.Matrix[12], Y: g.Matrix[13], Z: g.Matrix[14]}
}

// LoadGuides reads a guide transform list from JSON.
func LoadGuides(path string) ([]Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guides: %w", err)
	}
	var guides []Guide
	if err := json.Unmarshal(data, &guides); err != nil {
		return nil, fmt.Errorf("decoding guides %s: %w", path, err)
	}
	for _, g := range guides {
		if len(g.Matrix) != 16 {
			return nil, fmt.Errorf("guide %q: matrix must have 16 elements, got %d", g.Name, len(g.Matrix))
		}
	}
	return guides, nil
}

// SaveGuides writes a guide transform list as indented JSON.
func SaveGuides(path string, guides []Guide) error {
	data, err := json.MarshalIndent(guides, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding guides: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing guides: %w", err)
	}
	return nil
}
