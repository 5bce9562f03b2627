// Package config holds the tuning knobs for trial analysis.
//
// Configuration is loaded once from a JSON file and passed explicitly to the
// components that need it; there is no package-level state. Fields omitted
// from the JSON keep their defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisConfig represents the tuning parameters for trial conditioning,
// target synthesis, deviation screening and metric computation.
type AnalysisConfig struct {
	// Conditioning params
	OutlierQuantile *float64 `json:"outlier_quantile,omitempty"`
	OutlierMinRows  *int     `json:"outlier_min_rows,omitempty"`
	Normalize       *bool    `json:"normalize,omitempty"`

	// Target synthesis params
	TargetSamples *int     `json:"target_samples,omitempty"`
	MaxPathRadius *float64 `json:"max_path_radius,omitempty"`

	// Screening params
	DeviationThresholdDegrees *float64 `json:"deviation_threshold_degrees,omitempty"`
	NoiseFloor                *float64 `json:"noise_floor,omitempty"`
	NoMovementThreshold       *float64 `json:"no_movement_threshold,omitempty"`

	// Filtering params
	FilterWindow *int `json:"filter_window,omitempty"`
}

// EmptyAnalysisConfig returns an AnalysisConfig with all fields unset.
// The Get* methods supply defaults for unset fields.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The path must have a .json extension; fields omitted from the file retain
// their defaults.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *AnalysisConfig) Validate() error {
	if c.OutlierQuantile != nil {
		if *c.OutlierQuantile <= 0 || *c.OutlierQuantile >= 1 {
			return fmt.Errorf("outlier_quantile must be in (0,1), got %f", *c.OutlierQuantile)
		}
	}
	if c.TargetSamples != nil && *c.TargetSamples < 2 {
		return fmt.Errorf("target_samples must be at least 2, got %d", *c.TargetSamples)
	}
	if c.MaxPathRadius != nil && *c.MaxPathRadius <= 0 {
		return fmt.Errorf("max_path_radius must be positive, got %f", *c.MaxPathRadius)
	}
	if c.DeviationThresholdDegrees != nil {
		if *c.DeviationThresholdDegrees <= 0 || *c.DeviationThresholdDegrees > 180 {
			return fmt.Errorf("deviation_threshold_degrees must be in (0,180], got %f", *c.DeviationThresholdDegrees)
		}
	}
	if c.FilterWindow != nil && *c.FilterWindow < 1 {
		return fmt.Errorf("filter_window must be at least 1, got %d", *c.FilterWindow)
	}
	return nil
}

// GetOutlierQuantile returns the outlier_quantile value or the default.
func (c *AnalysisConfig) GetOutlierQuantile() float64 {
	if c.OutlierQuantile == nil {
		return 0.98
	}
	return *c.OutlierQuantile
}

// GetOutlierMinRows returns the outlier_min_rows value or the default.
// Tables at or below this size skip outlier removal entirely; quantile
// filtering on sparse data would discard real movement.
func (c *AnalysisConfig) GetOutlierMinRows() int {
	if c.OutlierMinRows == nil {
		return 10
	}
	return *c.OutlierMinRows
}

// GetNormalize returns the normalize value or the default.
func (c *AnalysisConfig) GetNormalize() bool {
	if c.Normalize == nil {
		return true
	}
	return *c.Normalize
}

// GetTargetSamples returns the target_samples value or the default.
func (c *AnalysisConfig) GetTargetSamples() int {
	if c.TargetSamples == nil {
		return 100
	}
	return *c.TargetSamples
}

// GetMaxPathRadius returns the max_path_radius value or the default.
func (c *AnalysisConfig) GetMaxPathRadius() float64 {
	if c.MaxPathRadius == nil {
		return 0.5
	}
	return *c.MaxPathRadius
}

// GetDeviationThresholdDegrees returns the deviation_threshold_degrees value
// or the default.
func (c *AnalysisConfig) GetDeviationThresholdDegrees() float64 {
	if c.DeviationThresholdDegrees == nil {
		return 40.0
	}
	return *c.DeviationThresholdDegrees
}

// GetNoiseFloor returns the noise_floor value or the default. Points closer
// to the origin than this are treated as vision noise by the screener.
func (c *AnalysisConfig) GetNoiseFloor() float64 {
	if c.NoiseFloor == nil {
		return 0.1
	}
	return *c.NoiseFloor
}

// GetNoMovementThreshold returns the no_movement_threshold value or the default.
func (c *AnalysisConfig) GetNoMovementThreshold() float64 {
	if c.NoMovementThreshold == nil {
		return 0.1
	}
	return *c.NoMovementThreshold
}

// GetFilterWindow returns the filter_window value or the default.
func (c *AnalysisConfig) GetFilterWindow() int {
	if c.FilterWindow == nil {
		return 15
	}
	return *c.FilterWindow
}
