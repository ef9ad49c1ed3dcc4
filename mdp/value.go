package mdp

import "math"

type StateValueEstimator interface {
	Estimate(State) float64
}

type DiscreteStateValueEstimator map[State]Reward

// NewStateValueTable returns a table with one zero entry per state.
func NewStateValueTable(dss DiscreteStateSpace) DiscreteStateValueEstimator {
	v := make(DiscreteStateValueEstimator, dss.Len())
	for _, s := range dss.States {
		v[s] = 0
	}
	return v
}

func (v DiscreteStateValueEstimator) Estimate(s State) float64 {
	if val, ok := v[s]; ok {
		return float64(val)
	}
	return 0.0
}

type DiscreteStateActionValueEstimator map[State]map[Action]float64

// NewStateActionValueTable zero-initializes Q(s, a) for every state and
// every action legal in it.
func NewStateActionValueTable(m *MDP) DiscreteStateActionValueEstimator {
	q := make(DiscreteStateActionValueEstimator, m.StateSpace.Len())
	for _, s := range m.StateSpace.States {
		q[s] = map[Action]float64{}
		for _, a := range m.ActionSpace.Actions(s) {
			q[s][a] = 0.0
		}
	}
	return q
}

func (q DiscreteStateActionValueEstimator) Estimate(s State, a Action) float64 {
	return q[s][a]
}

// Argmax breaks ties towards the lexically smallest action so that a fresh
// table yields a stable choice.
func (q DiscreteStateActionValueEstimator) Argmax(s State) Action {
	bestA := Action("")
	bestV := math.Inf(-1)
	for a, v := range q[s] {
		if v > bestV || (v == bestV && a < bestA) {
			bestV = v
			bestA = a
		}
	}
	return bestA
}
