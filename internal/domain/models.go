package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is the difficulty level a question is tagged with
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the selectable levels in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty maps user input (any case) to a Difficulty.
// An empty string yields DifficultyUnset.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DifficultyUnset, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return DifficultyUnset, fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// IsSet reports whether a level is selected
func (d Difficulty) IsSet() bool {
	return d != DifficultyUnset
}

// Result is a single hit returned by the search service
type Result struct {
	ID          string
	Title       string
	Platform    string
	Difficulty  string
	URL         string
	Tags        []string // nil when the hit carried no tags
	Description *string  // nil when the hit carried no description
}

// HasTags reports whether the hit carried a tag list
func (r Result) HasTags() bool {
	return r.Tags != nil
}

// HasDescription reports whether the hit carried a description
func (r Result) HasDescription() bool {
	return r.Description != nil
}

// Filters is the user-chosen difficulty and topic tag selection
type Filters struct {
	Difficulty Difficulty
	tags       map[string]struct{}
}

// NewFilters creates a filter selection from a difficulty and a list of tags.
// Duplicate and blank tags are dropped.
func NewFilters(difficulty Difficulty, tags ...string) Filters {
	f := Filters{Difficulty: difficulty}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if f.tags == nil {
			f.tags = make(map[string]struct{})
		}
		f.tags[tag] = struct{}{}
	}
	return f
}

// Tags returns the selected tags sorted alphabetically
func (f Filters) Tags() []string {
	tags := make([]string, 0, len(f.tags))
	for tag := range f.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// HasTag reports whether tag is selected
func (f Filters) HasTag(tag string) bool {
	_, ok := f.tags[tag]
	return ok
}

// TagCount returns the number of selected tags
func (f Filters) TagCount() int {
	return len(f.tags)
}

// IsEmpty reports whether no difficulty and no tags are selected
func (f Filters) IsEmpty() bool {
	return !f.Difficulty.IsSet() && len(f.tags) == 0
}

// Clone returns a deep copy, so snapshots never share the tag set
func (f Filters) Clone() Filters {
	return NewFilters(f.Difficulty, f.Tags()...)
}

// Phase is the lifecycle position of the search state machine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSettled
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a point-in-time snapshot of the search orchestrator
type State struct {
	Phase     Phase
	Query     string
	Filters   Filters
	Results   []Result // order as returned by the service
	Err       string   // empty unless Phase is PhaseFailed
	Version   uint64   // incremented on every published change
	RequestID uint64   // token of the most recently issued request
}

// IsLoading reports whether a request is in flight
func (s State) IsLoading() bool {
	return s.Phase == PhaseLoading
}

// HasError reports whether the last request failed
func (s State) HasError() bool {
	return s.Phase == PhaseFailed
}
