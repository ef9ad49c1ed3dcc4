package mdp

var (
	_ StateSpace  = DiscreteStateSpace{}
	_ ActionSpace = DiscreteActionSpace{}
)

type DiscreteStateSpace struct {
	States []State
}

func (d DiscreteStateSpace) IsSingleton() bool {
	return len(d.States) == 1
}

func (d DiscreteStateSpace) Len() int {
	return len(d.States)
}

type DiscreteActionSpace struct {
	Mapping map[State][]Action
}

func (das DiscreteActionSpace) Actions(s State) []Action {
	return das.Mapping[s]
}
