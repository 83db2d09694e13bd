package college

// Record is the normalized view of a college that filter predicates operate
// on. Slices are never nil.
type Record struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	FeeRangeRaw string   `json:"fee_range"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

// FeeInterval is a parsed fee range. When Valid is false the college has no
// usable fee information and Min and Max carry no meaning.
type FeeInterval struct {
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
	Valid bool  `json:"valid"`
}

// BudgetBracket is a named fee range offered as a budget filter. When
// Unbounded is set, Max is ignored and treated as +infinity.
type BudgetBracket struct {
	Label     string `json:"label" yaml:"label"`
	Min       int64  `json:"min" yaml:"min"`
	Max       int64  `json:"max,omitempty" yaml:"max"`
	Unbounded bool   `json:"unbounded,omitempty" yaml:"unbounded"`
}

// FilterState is the set of user-selected filter criteria. Empty strings
// and empty slices mean "no constraint" on that axis.
type FilterState struct {
	Text       string         `json:"text,omitempty"`
	Location   string         `json:"location,omitempty"`
	Budget     *BudgetBracket `json:"budget,omitempty"`
	Streams    []string       `json:"streams,omitempty"`
	Categories []string       `json:"categories,omitempty"`
}

// Empty reports whether no axis is constrained.
func (s FilterState) Empty() bool {
	return s.Text == "" && s.Location == "" && s.Budget == nil &&
		len(s.Streams) == 0 && len(s.Categories) == 0
}
