// Package tuning loads the server tuning file.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	Seed      int64 `yaml:"seed"`
	BoundaryR int   `yaml:"world_boundary_r"`
	Height    int   `yaml:"world_height"`
	SurfaceY  int   `yaml:"surface_y"`

	// Query limits.
	MaxRegionVolume int64 `yaml:"max_region_volume"`
	MaxResults      int   `yaml:"max_results"`

	SnapshotEverySec int `yaml:"snapshot_every_sec"`

	RateLimits RateLimits `yaml:"rate_limits"`
}

type RateLimits struct {
	ScanWindowSec int `yaml:"scan_window_sec"`
	ScanMax       int `yaml:"scan_max"`
}

// Load reads and sanity-checks the tuning file. Limits are required: an
// unlimited scan volume would let one query walk an unbounded column.
func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.MaxRegionVolume <= 0 {
		return t, fmt.Errorf("tuning.yaml: max_region_volume must be positive")
	}
	if t.MaxResults <= 0 {
		return t, fmt.Errorf("tuning.yaml: max_results must be positive")
	}
	if t.Height <= 0 {
		return t, fmt.Errorf("tuning.yaml: world_height must be positive")
	}
	if t.BoundaryR <= 0 {
		return t, fmt.Errorf("tuning.yaml: world_boundary_r must be positive")
	}
	return t, nil
}
