// Package elevator models a single elevator as a finite MDP: it enumerates
// the discretized state space and the actions a controller may take in a
// state. Transition dynamics and rewards belong to the consumers.
package elevator

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/CodeStranger-Fred/elevatormdp/logger"
	"github.com/CodeStranger-Fred/elevatormdp/mdp"
)

// LargeStateSpace is the size above which enumeration is logged as a warning.
const LargeStateSpace = 1 << 22

type Model struct {
	cfg Config
	log zerolog.Logger

	once   sync.Once
	states StateSet
}

type Option func(*Model)

func WithElevators(n int) Option { return func(m *Model) { m.cfg.Elevators = n } }
func WithFloors(n int) Option { return func(m *Model) { m.cfg.Floors = n } }
func WithFloorHeight(h float64) Option { return func(m *Model) { m.cfg.FloorHeight = h } }
func WithSpeed(s int) Option { return func(m *Model) { m.cfg.Speed = s } }
func WithCapacity(c int) Option { return func(m *Model) { m.cfg.Capacity = c } }
func WithStopTime(t float64) Option { return func(m *Model) { m.cfg.StopTime = t } }
func WithLogger(l zerolog.Logger) Option { return func(m *Model) { m.log = l } }

// New builds a model from DefaultConfig adjusted by opts.
func New(opts ...Option) (*Model, error) {
	return NewFromConfig(DefaultConfig(), opts...)
}

func NewFromConfig(cfg Config, opts ...Option) (*Model, error) {
	m := &Model{
		cfg: cfg,
		log: logger.Get().With().Str("component", "elevator").Logger().Level(zerolog.InfoLevel),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Config() Config {
	return m.cfg
}

// StateCount is |States()| without enumerating.
func (m *Model) StateCount() int {
	n, _ := m.cfg.stateCount()
	return n
}

func (m *Model) velocities() [3]int {
	return [3]int{-m.cfg.Speed, 0, m.cfg.Speed}
}

// States returns the full product space of call flags, positions,
// velocities and occupancies. It is built on first use and cached; the
// returned set is shared and must not be modified (see StateSet.Clone).
func (m *Model) States() StateSet {
	m.once.Do(func() {
		if n := m.StateCount(); n > LargeStateSpace {
			m.log.Warn().Int("floors", m.cfg.Floors).Int("states", n).Msg("enumerating a large state space")
		}
		start := time.Now()
		m.states = m.enumerate()
		m.log.Debug().
			Int("floors", m.cfg.Floors).
			Int("capacity", m.cfg.Capacity).
			Int("states", len(m.states)).
			Dur("took", time.Since(start)).
			Msg("enumerated state space")
	})
	return m.states
}

// enumerate expands each position on its own goroutine and merges.
func (m *Model) enumerate() StateSet {
	perPosition := make([][]State, m.cfg.Floors)
	callMasks := uint64(1) << uint(m.cfg.Floors-1)
	vs := m.velocities()

	var wg sync.WaitGroup
	for p := 0; p < m.cfg.Floors; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			out := make([]State, 0, m.StateCount()/m.cfg.Floors)
			for c := uint64(0); c < callMasks; c++ {
				for _, v := range vs {
					for o := 0; o <= m.cfg.Capacity; o++ {
						out = append(out, State{Calls: CallFlags(c), Position: p, Velocity: v, Occupancy: o})
					}
				}
			}
			perPosition[p] = out
		}(p)
	}
	wg.Wait()

	states := make(StateSet, m.StateCount())
	for _, part := range perPosition {
		for _, s := range part {
			states[s] = struct{}{}
		}
	}
	return states
}

// Actions lists the legal actions in s. Only the position matters: the
// ground floor forbids Down, the top floor forbids Up.
//
// Callers must additionally never follow Up with Down (or Down with Up)
// without a Hold in between. That rule spans two decisions, so it is
// enforced by ActionsAfter and Controller, not here.
func (m *Model) Actions(s State) ([]Action, error) {
	top := m.cfg.Floors - 1
	switch p := s.Position; {
	case p < 0 || p > top:
		return nil, fmt.Errorf("%w: position %d outside [0, %d]", ErrInvalidState, p, top)
	case p == 0:
		return []Action{Hold, Up}, nil
	case p == top:
		return []Action{Hold, Down}, nil
	default:
		return []Action{Down, Hold, Up}, nil
	}
}

// ActionsAfter is Actions without the reversal of previous. A nil previous
// marks the first decision of a run.
func (m *Model) ActionsAfter(s State, previous *Action) ([]Action, error) {
	actions, err := m.Actions(s)
	if err != nil || previous == nil {
		return actions, err
	}
	legal := actions[:0]
	for _, a := range actions {
		if !reverses(*previous, a) {
			legal = append(legal, a)
		}
	}
	return legal, nil
}

// Validate checks every field of s against the model's domains.
func (m *Model) Validate(s State) error {
	if s.Position < 0 || s.Position >= m.cfg.Floors {
		return fmt.Errorf("%w: position %d outside [0, %d]", ErrInvalidState, s.Position, m.cfg.Floors-1)
	}
	if s.Calls>>uint(m.cfg.Floors-1) != 0 {
		return fmt.Errorf("%w: call flags %b exceed %d floors", ErrInvalidState, uint64(s.Calls), m.cfg.Floors)
	}
	if v := s.Velocity; v != -m.cfg.Speed && v != 0 && v != m.cfg.Speed {
		return fmt.Errorf("%w: velocity %d not in {%d, 0, %d}", ErrInvalidState, v, -m.cfg.Speed, m.cfg.Speed)
	}
	if s.Occupancy < 0 || s.Occupancy > m.cfg.Capacity {
		return fmt.Errorf("%w: occupancy %d outside [0, %d]", ErrInvalidState, s.Occupancy, m.cfg.Capacity)
	}
	return nil
}

func (m *Model) Contains(s State) bool {
	return m.Validate(s) == nil
}

// Tuple renders s as (c_1, ..., c_{F-1}, p, v, o).
func (m *Model) Tuple(s State) []int {
	return append(s.Calls.Tuple(m.cfg.Floors), s.Position, s.Velocity, s.Occupancy)
}

func (m *Model) Key(s State) mdp.State {
	return mdp.State(formatState(s, m.cfg.Floors))
}

// ParseState reads a key produced by Key and checks it against the model.
func (m *Model) ParseState(key mdp.State) (State, error) {
	s, floors, err := parseState(string(key))
	if err != nil {
		return State{}, err
	}
	if floors != m.cfg.Floors {
		return State{}, fmt.Errorf("%w: key %q has %d call flags, want %d", ErrInvalidState, key, floors-1, m.cfg.Floors-1)
	}
	return s, m.Validate(s)
}

// MDP lays the model out as a discrete mdp.MDP in canonical state order,
// mapping every state to its legal actions.
func (m *Model) MDP(initial State, discount float64) (*mdp.MDP, error) {
	if err := m.Validate(initial); err != nil {
		return nil, err
	}

	sorted := m.States().Sorted()
	dss := mdp.DiscreteStateSpace{States: make([]mdp.State, 0, len(sorted))}
	das := mdp.DiscreteActionSpace{Mapping: make(map[mdp.State][]mdp.Action, len(sorted))}
	for _, s := range sorted {
		key := m.Key(s)
		dss.States = append(dss.States, key)

		actions, err := m.Actions(s)
		if err != nil {
			return nil, err
		}
		keys := make([]mdp.Action, len(actions))
		for i, a := range actions {
			keys[i] = a.Key()
		}
		das.Mapping[key] = keys
	}

	return &mdp.MDP{
		StateSpace:     dss,
		ActionSpace:    das,
		InitialState:   m.Key(initial),
		RewardDiscount: discount,
	}, nil
}
