package elevator

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// CallFlags holds the call requests of floors 1..F-1, floor i in bit i-1.
// The ground floor has no flag: every passenger is assumed to travel up.
type CallFlags uint64

func (c CallFlags) Has(floor int) bool {
	if floor < 1 || floor >= MaxFloors {
		return false
	}
	return c&(1<<uint(floor-1)) != 0
}

func (c CallFlags) With(floor int) CallFlags {
	if floor < 1 || floor >= MaxFloors {
		return c
	}
	return c | 1<<uint(floor-1)
}

// Tuple expands the flags of a building with the given floor count into
// c_1..c_{floors-1}.
func (c CallFlags) Tuple(floors int) []int {
	out := make([]int, 0, floors-1)
	for i := 1; i < floors; i++ {
		if c.Has(i) {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}

// State is (c_1, ..., c_{F-1}, p, v, o): call flags, position (floor index),
// velocity in {-speed, 0, speed} and occupancy in {0, ..., capacity}.
type State struct {
	Calls     CallFlags
	Position  int
	Velocity  int
	Occupancy int
}

// NewState builds a state from its tuple form; calls[i] is the flag of
// floor i+1 and must be 0 or 1.
func NewState(calls []int, position, velocity, occupancy int) (State, error) {
	if len(calls) >= MaxFloors {
		return State{}, fmt.Errorf("%w: %d call flags", ErrInvalidState, len(calls))
	}
	var c CallFlags
	for i, v := range calls {
		switch v {
		case 0:
		case 1:
			c = c.With(i + 1)
		default:
			return State{}, fmt.Errorf("%w: call flag c_%d = %d", ErrInvalidState, i+1, v)
		}
	}
	return State{Calls: c, Position: position, Velocity: velocity, Occupancy: occupancy}, nil
}

func compareStates(a, b State) int {
	return cmp.Or(
		cmp.Compare(a.Calls, b.Calls),
		cmp.Compare(a.Position, b.Position),
		cmp.Compare(a.Velocity, b.Velocity),
		cmp.Compare(a.Occupancy, b.Occupancy),
	)
}

// formatState renders c=0101|p=2|v=-3|o=1 with c_1 leftmost.
func formatState(s State, floors int) string {
	var b strings.Builder
	b.WriteString("c=")
	for _, f := range s.Calls.Tuple(floors) {
		b.WriteByte('0' + byte(f))
	}
	fmt.Fprintf(&b, "|p=%d|v=%d|o=%d", s.Position, s.Velocity, s.Occupancy)
	return b.String()
}

func parseState(key string) (State, int, error) {
	parts := strings.Split(key, "|")
	if len(parts) != 4 {
		return State{}, 0, fmt.Errorf("%w: malformed key %q", ErrInvalidState, key)
	}

	var fields [4]string
	for i, prefix := range []string{"c=", "p=", "v=", "o="} {
		v, ok := strings.CutPrefix(parts[i], prefix)
		if !ok {
			return State{}, 0, fmt.Errorf("%w: key %q: field %d lacks %q", ErrInvalidState, key, i, prefix)
		}
		fields[i] = v
	}

	calls := make([]int, len(fields[0]))
	for i, r := range fields[0] {
		if r != '0' && r != '1' {
			return State{}, 0, fmt.Errorf("%w: key %q: call flag %q", ErrInvalidState, key, r)
		}
		calls[i] = int(r - '0')
	}

	var nums [3]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return State{}, 0, fmt.Errorf("%w: key %q: %v", ErrInvalidState, key, err)
		}
		nums[i] = n
	}

	s, err := NewState(calls, nums[0], nums[1], nums[2])
	return s, len(calls) + 1, err
}

// StateSet is an unordered, duplicate-free collection of states.
type StateSet map[State]struct{}

func (s StateSet) Contains(st State) bool {
	_, ok := s[st]
	return ok
}

func (s StateSet) Len() int {
	return len(s)
}

// Clone returns a copy the caller may mutate freely.
func (s StateSet) Clone() (StateSet, error) {
	var out StateSet
	if err := deepcopy.Copy(&out, s); err != nil {
		return nil, fmt.Errorf("clone state set: %w", err)
	}
	return out, nil
}

// Sorted lists the states by calls, position, velocity, then occupancy.
func (s StateSet) Sorted() []State {
	out := make([]State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	slices.SortFunc(out, compareStates)
	return out
}

// Equal reports whether both sets hold the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if !other.Contains(st) {
			return false
		}
	}
	return true
}
