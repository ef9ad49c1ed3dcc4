package mdp

// Policy picks among the actions the environment reports as legal in s.
// The environment owns legality; a policy never sees other actions.
type Policy interface {
	Name() string

	Act(s State, actions []Action) ProbabilityDistribution[Action]
}

type PolicyRandom struct{}

func (p PolicyRandom) Name() string {
	return "random"
}

func (p PolicyRandom) Act(s State, actions []Action) ProbabilityDistribution[Action] {
	pdf := DiscretePdf[Action]{}
	for _, a := range actions {
		Add(&pdf, a, Probability(1.0/float64(len(actions))))
	}
	return pdf
}
