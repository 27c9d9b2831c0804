package fsm

import (
	"fmt"
	"sort"
)

// baseStates are members of every variant.
var baseStates = []State{LevelInit, Playing, Paused, LifeLost, LevelComplete, GameOver}

// Variant is a named, closed set of states a Machine may occupy.
// The base states are always members; extension states are opt-in.
type Variant struct {
	name    string
	members map[State]bool
}

// Predefined variants.
var (
	// Classic is the single-player maze variant.
	Classic = NewVariant("classic", PowerMode)
	// MouseTrap is the two-player variant with alternating turns.
	MouseTrap = NewVariant("mousetrap", PowerMode, PlayerTurn, MouseTurn)
)

// Base returns a copy of the base state list.
func Base() []State {
	out := make([]State, len(baseStates))
	copy(out, baseStates)
	return out
}

// NewVariant builds a variant containing the base states plus extras.
func NewVariant(name string, extras ...State) Variant {
	members := make(map[State]bool, len(baseStates)+len(extras))
	for _, s := range baseStates {
		members[s] = true
	}
	for _, s := range extras {
		members[s] = true
	}
	return Variant{name: name, members: members}
}

// VariantByName returns one of the predefined variants.
func VariantByName(name string) (Variant, error) {
	switch normalizeName(name) {
	case "classic", "":
		return Classic, nil
	case "mousetrap":
		return MouseTrap, nil
	case "base":
		return NewVariant("base"), nil
	default:
		return Variant{}, fmt.Errorf("fsm: unknown variant %q", name)
	}
}

// Name returns the variant's name.
func (v Variant) Name() string {
	return v.name
}

// Has reports whether s is a member of the variant.
func (v Variant) Has(s State) bool {
	return v.members[s]
}

// States returns the members in declaration order.
func (v Variant) States() []State {
	out := make([]State, 0, len(v.members))
	for s := range v.members {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsZero reports whether the variant was never initialized.
func (v Variant) IsZero() bool {
	return len(v.members) == 0
}
