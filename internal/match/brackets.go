package match

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/collegefinder/pkg/college"
)

//go:embed brackets.yaml
var presetsRawData []byte

// presetsFile is the top-level structure of the embedded YAML.
type presetsFile struct {
	Brackets []college.BudgetBracket `yaml:"brackets"`
	Streams  []string                `yaml:"streams"`
}

var (
	presetsOnce sync.Once
	presets     presetsFile
	presetsErr  error
)

func loadPresets() {
	if err := yaml.Unmarshal(presetsRawData, &presets); err != nil {
		presetsErr = fmt.Errorf("match: parse presets yaml: %w", err)
		return
	}
	presetsErr = ValidateBrackets(presets.Brackets)
}

// DefaultBrackets returns a copy of the embedded budget brackets.
func DefaultBrackets() ([]college.BudgetBracket, error) {
	presetsOnce.Do(loadPresets)
	if presetsErr != nil {
		return nil, presetsErr
	}
	out := make([]college.BudgetBracket, len(presets.Brackets))
	copy(out, presets.Brackets)
	return out, nil
}

// DefaultStreams returns a copy of the embedded stream presets.
func DefaultStreams() ([]string, error) {
	presetsOnce.Do(loadPresets)
	if presetsErr != nil {
		return nil, presetsErr
	}
	out := make([]string, len(presets.Streams))
	copy(out, presets.Streams)
	return out, nil
}

// BracketByLabel finds the bracket with the given label.
func BracketByLabel(brackets []college.BudgetBracket, label string) (college.BudgetBracket, bool) {
	for i := range brackets {
		if brackets[i].Label == label {
			return brackets[i], true
		}
	}
	return college.BudgetBracket{}, false
}

// Errors returned by ValidateBrackets.
var (
	ErrNoBrackets       = errors.New("at least one bracket is required")
	ErrBracketLabel     = errors.New("bracket label is required")
	ErrBracketRange     = errors.New("bracket min must not exceed max")
	ErrBracketOrder     = errors.New("brackets must be ordered by min ascending")
	ErrBracketOverlap   = errors.New("brackets must not overlap")
	ErrBracketDuplicate = errors.New("bracket labels must be unique")
)

// ValidateBrackets checks that brackets are labelled, well-formed, sorted by
// min, and non-overlapping. Adjacent brackets may share a boundary value.
// Only the last bracket may be unbounded.
func ValidateBrackets(brackets []college.BudgetBracket) error {
	if len(brackets) == 0 {
		return ErrNoBrackets
	}
	seen := make(map[string]struct{}, len(brackets))
	for i, b := range brackets {
		if b.Label == "" {
			return fmt.Errorf("bracket %d: %w", i, ErrBracketLabel)
		}
		if _, dup := seen[b.Label]; dup {
			return fmt.Errorf("bracket %q: %w", b.Label, ErrBracketDuplicate)
		}
		seen[b.Label] = struct{}{}
		if !b.Unbounded && b.Min > b.Max {
			return fmt.Errorf("bracket %q: %w", b.Label, ErrBracketRange)
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if b.Min < prev.Min {
			return fmt.Errorf("bracket %q: %w", b.Label, ErrBracketOrder)
		}
		if prev.Unbounded || b.Min < prev.Max {
			return fmt.Errorf("brackets %q and %q: %w", prev.Label, b.Label, ErrBracketOverlap)
		}
	}
	return nil
}
