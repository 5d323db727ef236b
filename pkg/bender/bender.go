// Package bender manages the shop's bender and die profiles: which
// machines exist, which dies each one carries, and the per-die numbers
// (CLR, tube OD, die offset, minimum grip, minimum tail) a bend sheet
// run needs.
// Profiles persist as a single TOML file under the user config dir.
package bender

import (
	"fmt"
	"sort"
	"strings"
)

// Die is one die mounted on a bender. All lengths are in the unit the
// profile was entered in; they are not converted on load.
type Die struct {
	ID        string  `toml:"id" json:"id"`
	Name      string  `toml:"name" json:"name"`
	TubeOD    string  `toml:"tube_od" json:"tubeOD"`
	CLR       float64 `toml:"clr" json:"clr"`
	DieOffset float64 `toml:"die_offset" json:"dieOffset"`
	MinGrip   float64 `toml:"min_grip" json:"minGrip"`
	MinTail   float64 `toml:"min_tail" json:"minTail"`
}

// Bender is one machine and its set of dies.
type Bender struct {
	ID   string `toml:"id" json:"id"`
	Name string `toml:"name" json:"name"`
	Dies []Die  `toml:"dies,omitempty" json:"dies"`
}

// Die returns the die with the given id, or nil.
func (b *Bender) Die(dieID string) *Die {
	for i := range b.Dies {
		if b.Dies[i].ID == dieID {
			return &b.Dies[i]
		}
	}
	return nil
}

// NotFoundError reports a lookup of a bender or die id that does not
// exist in the profile set.
type NotFoundError struct {
	Kind string // "bender" or "die"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports a profile that cannot be saved as entered.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func validateBender(b Bender) error {
	if strings.TrimSpace(b.Name) == "" {
		return &ValidationError{Field: "name", Message: "bender name must not be empty"}
	}
	return nil
}

func validateDie(d Die) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "die name must not be empty"}
	}
	if d.CLR <= 0 {
		return &ValidationError{Field: "clr", Message: fmt.Sprintf("centerline radius must be positive, got %v", d.CLR)}
	}
	if d.DieOffset < 0 {
		return &ValidationError{Field: "die_offset", Message: fmt.Sprintf("die offset must not be negative, got %v", d.DieOffset)}
	}
	if d.MinGrip < 0 {
		return &ValidationError{Field: "min_grip", Message: fmt.Sprintf("minimum grip must not be negative, got %v", d.MinGrip)}
	}
	if d.MinTail < 0 {
		return &ValidationError{Field: "min_tail", Message: fmt.Sprintf("minimum tail must not be negative, got %v", d.MinTail)}
	}
	return nil
}

// sortBenders keeps the profile file and every listing in a stable,
// name-ordered form so saves diff cleanly.
func sortBenders(benders []Bender) {
	sort.Slice(benders, func(i, j int) bool {
		return benders[i].Name < benders[j].Name
	})
	for i := range benders {
		dies := benders[i].Dies
		sort.Slice(dies, func(a, b int) bool {
			return dies[a].Name < dies[b].Name
		})
	}
}
