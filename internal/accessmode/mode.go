package accessmode

import "strings"

// Mode is a human sensory channel through which content can be perceived.
type Mode uint8

const (
	Textual Mode = 1 << iota
	Visual
	Auditory
)

// modeOrder is the canonical output order.
var modeOrder = [...]Mode{Textual, Visual, Auditory}

func (m Mode) String() string {
	switch m {
	case Textual:
		return "textual"
	case Visual:
		return "visual"
	case Auditory:
		return "auditory"
	default:
		return "unknown"
	}
}

// ParseMode resolves a schema.org access mode name.
func ParseMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "textual":
		return Textual, true
	case "visual":
		return Visual, true
	case "auditory":
		return Auditory, true
	}
	return 0, false
}

// ModeSet is a set of access modes. The zero value is the empty set; two sets
// with the same members compare equal with ==.
type ModeSet uint8

const allModes = ModeSet(Textual | Visual | Auditory)

// NewModeSet builds a set from the given modes.
func NewModeSet(modes ...Mode) ModeSet {
	var s ModeSet
	for _, m := range modes {
		s = s.With(m)
	}
	return s
}

// Has reports whether m is a member of s.
func (s ModeSet) Has(m Mode) bool {
	return s&ModeSet(m) != 0
}

// With returns s plus m.
func (s ModeSet) With(m Mode) ModeSet {
	return (s | ModeSet(m)) & allModes
}

// IsEmpty reports whether s has no members.
func (s ModeSet) IsEmpty() bool {
	return s&allModes == 0
}

// IsSubsetOf reports whether every member of s is also in other.
func (s ModeSet) IsSubsetOf(other ModeSet) bool {
	return s&^other == 0
}

// IsProperSubsetOf reports whether s is a subset of other and smaller than it.
func (s ModeSet) IsProperSubsetOf(other ModeSet) bool {
	return s != other && s.IsSubsetOf(other)
}

// members returns the members of s in canonical order.
func (s ModeSet) members() []Mode {
	out := make([]Mode, 0, len(modeOrder))
	for _, m := range modeOrder {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Strings returns the schema.org names of the members of s in canonical order.
func (s ModeSet) Strings() []string {
	modes := s.members()
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}

// String joins the member names with ", ", the form used inside an
// accessModeSufficient value.
func (s ModeSet) String() string {
	return strings.Join(s.Strings(), ", ")
}

// universe lists every non-empty ModeSet: singles in canonical order, then
// pairs, then the triple.
var universe = [...]ModeSet{
	NewModeSet(Textual),
	NewModeSet(Visual),
	NewModeSet(Auditory),
	NewModeSet(Textual, Visual),
	NewModeSet(Textual, Auditory),
	NewModeSet(Visual, Auditory),
	NewModeSet(Textual, Visual, Auditory),
}

// Candidates returns the fixed universe of candidate mode sets in evaluation
// order.
func Candidates() []ModeSet {
	out := make([]ModeSet, len(universe))
	copy(out, universe[:])
	return out
}
