// Package units maps the CAD-internal unit (cm) to the display unit of a
// design and carries the precision conventions a bend sheet is rendered
// with. Configurations are plain values threaded as parameters; nothing in
// this package holds global state.
package units

import (
	"fmt"
	"sort"
	"strings"
)

// Valid mark precisions, expressed as fraction denominators of the display
// unit. Imperial sheets use power-of-two tape fractions; metric sheets use
// decimal subdivisions. 0 means whole units.
var (
	ValidPrecisionsImperial = []int{0, 4, 8, 16, 32}
	ValidPrecisionsMetric   = []int{0, 1, 2, 5, 10}
)

const (
	DefaultPrecisionImperial = 16
	DefaultPrecisionMetric   = 1
)

// Config describes one display unit system.
type Config struct {
	IsMetric         bool    `json:"isMetric"`
	Name             string  `json:"name"`     // "in", "ft", "mm", "cm", "m"
	Symbol           string  `json:"symbol"`   // display symbol, e.g. `"` for inches
	CmToUnit         float64 `json:"cmToUnit"` // conversion factor from internal cm
	DefaultTubeOD    string  `json:"defaultTubeOD"`
	DefaultPrecision int     `json:"defaultPrecision"`
	ValidPrecisions  []int   `json:"validPrecisions"`
}

var configs = map[string]Config{
	"in": {
		IsMetric:         false,
		Name:             "in",
		Symbol:           `"`,
		CmToUnit:         1.0 / 2.54,
		DefaultTubeOD:    "1.75",
		DefaultPrecision: DefaultPrecisionImperial,
		ValidPrecisions:  ValidPrecisionsImperial,
	},
	"ft": {
		IsMetric:         false,
		Name:             "ft",
		Symbol:           "'",
		CmToUnit:         1.0 / 30.48,
		DefaultTubeOD:    "0.146",
		DefaultPrecision: DefaultPrecisionImperial,
		ValidPrecisions:  ValidPrecisionsImperial,
	},
	"mm": {
		IsMetric:         true,
		Name:             "mm",
		Symbol:           "mm",
		CmToUnit:         10.0,
		DefaultTubeOD:    "44.45",
		DefaultPrecision: DefaultPrecisionMetric,
		ValidPrecisions:  ValidPrecisionsMetric,
	},
	"cm": {
		IsMetric:         true,
		Name:             "cm",
		Symbol:           "cm",
		CmToUnit:         1.0,
		DefaultTubeOD:    "4.445",
		DefaultPrecision: DefaultPrecisionMetric,
		ValidPrecisions:  ValidPrecisionsMetric,
	},
	"m": {
		IsMetric:         true,
		Name:             "m",
		Symbol:           "m",
		CmToUnit:         0.01,
		DefaultTubeOD:    "0.04445",
		DefaultPrecision: DefaultPrecisionMetric,
		ValidPrecisions:  ValidPrecisionsMetric,
	},
}

// ByName returns the configuration for a unit name.
func ByName(name string) (Config, error) {
	cfg, ok := configs[name]
	if !ok {
		names := make([]string, 0, len(configs))
		for n := range configs {
			names = append(names, n)
		}
		sort.Strings(names)
		return Config{}, fmt.Errorf("unsupported unit system %q, supported units: %s",
			name, strings.Join(names, ", "))
	}
	return cfg, nil
}

// All returns every supported unit configuration, name-sorted.
func All() []Config {
	names := make([]string, 0, len(configs))
	for n := range configs {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Config, 0, len(names))
	for _, n := range names {
		out = append(out, configs[n])
	}
	return out
}

// NormalizePrecision clamps a user-entered precision to the valid set for
// this unit system, falling back to the default when the value is invalid.
func (c Config) NormalizePrecision(p int) int {
	for _, v := range c.ValidPrecisions {
		if p == v {
			return p
		}
	}
	return c.DefaultPrecision
}
