package mdp

type ActionSpace interface {
	Actions(State) []Action
}

type StateSpace interface {
	IsSingleton() bool
	Len() int
}

type State string

type Action string

// Reward is left for reward functions living outside this module.
type Reward float64

type MDP struct {
	ActionSpace    ActionSpace
	StateSpace     DiscreteStateSpace
	InitialState   State
	RewardDiscount float64
	Terminal       map[State]bool
}

func (m MDP) IsTerminal(state State) bool {
	term, ok := m.Terminal[state]
	return term && ok
}
