package mdp

import "math"

type PolicyGreedy struct {
	Estimator StateActionValueEstimator
}

type StateActionValueEstimator interface {
	Estimate(State, Action) float64
}

func (g PolicyGreedy) Name() string { return "greedy state-action estimator" }

func (g PolicyGreedy) Act(s State, actions []Action) ProbabilityDistribution[Action] {
	bestA := Action("")
	bestV := math.Inf(-1)
	for _, a := range actions {
		if v := g.Estimator.Estimate(s, a); v > bestV {
			bestV = v
			bestA = a
		}
	}
	return DiscretePdf[Action]{
		bestA: 1,
	}
}
