package elevator

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/CodeStranger-Fred/elevatormdp/mdp"
)

// Controller is the decision-loop side of the model: it remembers the last
// committed action so the elevator never reverses within one sample.
// A Controller belongs to a single loop and is not safe for concurrent use.
type Controller struct {
	model    *Model
	rng      *rand.Rand
	previous *Action
}

// NewController returns a controller drawing policy samples from r, or from
// a time-seeded source when r is nil.
func NewController(m *Model, r *rand.Rand) *Controller {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{model: m, rng: r}
}

func (c *Controller) Previous() (Action, bool) {
	if c.previous == nil {
		return Hold, false
	}
	return *c.previous, true
}

func (c *Controller) Reset() {
	c.previous = nil
}

// Legal lists the actions allowed in s given the last committed action.
func (c *Controller) Legal(s State) ([]Action, error) {
	return c.model.ActionsAfter(s, c.previous)
}

// Commit records a as the action taken in s.
func (c *Controller) Commit(s State, a Action) error {
	legal, err := c.Legal(s)
	if err != nil {
		return err
	}
	if !slices.Contains(legal, a) {
		if prev, ok := c.Previous(); ok && reverses(prev, a) {
			return fmt.Errorf("%w: %s after %s", ErrDirectionSwitch, a, prev)
		}
		return fmt.Errorf("%w: %s at position %d", ErrIllegalAction, a, s.Position)
	}
	c.previous = &a
	return nil
}

// Decide lets policy pick among the legal actions of s and commits the pick.
func (c *Controller) Decide(s State, policy mdp.Policy) (Action, error) {
	legal, err := c.Legal(s)
	if err != nil {
		return Hold, err
	}
	keys := make([]mdp.Action, len(legal))
	for i, a := range legal {
		keys[i] = a.Key()
	}

	key := c.model.Key(s)
	choice := policy.Act(key, keys).Choose(c.rng)
	a, err := ParseAction(choice)
	if err != nil {
		return Hold, fmt.Errorf("policy %s: %w", policy.Name(), err)
	}
	if err := c.Commit(s, a); err != nil {
		return Hold, fmt.Errorf("policy %s: %w", policy.Name(), err)
	}

	c.model.log.Debug().
		Str("state", string(key)).
		Str("policy", policy.Name()).
		Stringer("action", a).
		Msg("decided")
	return a, nil
}
