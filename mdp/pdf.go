package mdp

import (
	"math"
	"math/rand"
)

type ProbabilityDistribution[Category comparable] interface {
	Choose(r *rand.Rand) Category
}

type Probability float64

type DiscretePdf[Category comparable] map[Category]Probability

// Choose samples an outcome. Outcomes are walked in map order, so a fixed
// seed does not make the draw reproducible unless only one outcome has mass.
func (p DiscretePdf[Category]) Choose(r *rand.Rand) Category {
	p.Check()
	v := r.Float64()
	cumulative := 0.0
	var last Category
	for st, prob := range p {
		cumulative += float64(prob)
		if cumulative >= v {
			return st
		}
		last = st
	}
	return last
}

func (p DiscretePdf[Category]) Check() {
	sum := 0.0
	for _, prob := range p {
		sum += float64(prob)
	}

	if math.Abs(sum-1) > .001 {
		panic("probabilities don't sum to 1")
	}
}

func Add[T comparable](pdf *DiscretePdf[T], outcome T, p Probability) {
	if *pdf == nil {
		*pdf = make(DiscretePdf[T])
	}
	(*pdf)[outcome] += p
}
