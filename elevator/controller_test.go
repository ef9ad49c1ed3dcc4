package elevator

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/CodeStranger-Fred/elevatormdp/mdp"
)

type fixedPolicy struct {
	action mdp.Action
}

func (f fixedPolicy) Name() string { return "fixed-" + string(f.action) }

func (f fixedPolicy) Act(mdp.State, []mdp.Action) mdp.ProbabilityDistribution[mdp.Action] {
	return mdp.DiscretePdf[mdp.Action]{f.action: 1}
}

func TestCommitDirectionSwitch(t *testing.T) {
	m := mustModel(t)
	c := NewController(m, rand.New(rand.NewSource(1)))
	s := State{Position: 2}

	if err := c.Commit(s, Up); err != nil {
		t.Fatalf("Commit(up) = %v", err)
	}
	if err := c.Commit(s, Down); !errors.Is(err, ErrDirectionSwitch) {
		t.Fatalf("Commit(down) after up = %v, want ErrDirectionSwitch", err)
	}
	if prev, ok := c.Previous(); !ok || prev != Up {
		t.Errorf("rejected commit changed previous to %v", prev)
	}
	if err := c.Commit(s, Hold); err != nil {
		t.Fatalf("Commit(hold) = %v", err)
	}
	if err := c.Commit(s, Down); err != nil {
		t.Fatalf("Commit(down) after hold = %v", err)
	}
	if err := c.Commit(s, Up); !errors.Is(err, ErrDirectionSwitch) {
		t.Fatalf("Commit(up) after down = %v, want ErrDirectionSwitch", err)
	}
}

func TestCommitIllegalAction(t *testing.T) {
	m := mustModel(t)
	c := NewController(m, nil)

	if err := c.Commit(State{Position: 0}, Down); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("Commit(down) at ground = %v, want ErrIllegalAction", err)
	}
	if err := c.Commit(State{Position: 4}, Up); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("Commit(up) at top = %v, want ErrIllegalAction", err)
	}
	if err := c.Commit(State{Position: 7}, Hold); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Commit() at position 7 = %v, want ErrInvalidState", err)
	}
	if _, ok := c.Previous(); ok {
		t.Errorf("failed commits recorded a previous action")
	}
}

func TestReset(t *testing.T) {
	c := NewController(mustModel(t), nil)
	if err := c.Commit(State{Position: 2}, Down); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if _, ok := c.Previous(); ok {
		t.Errorf("Previous() reported an action after Reset")
	}
	if err := c.Commit(State{Position: 2}, Up); err != nil {
		t.Errorf("Commit(up) after Reset = %v", err)
	}
}

func TestDecideNeverReverses(t *testing.T) {
	m := mustModel(t)
	c := NewController(m, rand.New(rand.NewSource(42)))
	states := m.States().Sorted()
	r := rand.New(rand.NewSource(7))

	var prev *Action
	seen := map[Action]bool{}
	for i := 0; i < 2000; i++ {
		s := states[r.Intn(len(states))]
		a, err := c.Decide(s, mdp.PolicyRandom{})
		if err != nil {
			t.Fatalf("step %d: Decide(%+v) = %v", i, s, err)
		}
		legal, _ := m.Actions(s)
		if !slices.Contains(legal, a) {
			t.Fatalf("step %d: %s not legal at position %d", i, a, s.Position)
		}
		if prev != nil && reverses(*prev, a) {
			t.Fatalf("step %d: %s directly after %s", i, a, *prev)
		}
		seen[a] = true
		prev = &a
	}
	if len(seen) != 3 {
		t.Errorf("random policy only ever chose %v", seen)
	}
}

func TestDecideRejectsBadPolicies(t *testing.T) {
	m := mustModel(t)
	c := NewController(m, rand.New(rand.NewSource(1)))
	s := State{Position: 2}

	if _, err := c.Decide(s, fixedPolicy{action: "7"}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Decide(policy choosing 7) = %v, want ErrInvalidAction", err)
	}
	if a, err := c.Decide(s, fixedPolicy{action: Down.Key()}); err != nil || a != Down {
		t.Fatalf("Decide(down) = %v, %v", a, err)
	}
	if _, err := c.Decide(s, fixedPolicy{action: Up.Key()}); !errors.Is(err, ErrDirectionSwitch) {
		t.Errorf("Decide(up) after down = %v, want ErrDirectionSwitch", err)
	}
	if _, err := c.Decide(State{Position: -1}, mdp.PolicyRandom{}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Decide(p=-1) = %v, want ErrInvalidState", err)
	}
}

func TestDecideGreedy(t *testing.T) {
	m := mustModel(t)
	s := mustState(t, []int{0, 0, 0, 0}, 2, 0, 1)
	env, err := m.MDP(s, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	q := mdp.NewStateActionValueTable(env)
	q[m.Key(s)][Up.Key()] = 1

	c := NewController(m, nil)
	if a, err := c.Decide(s, mdp.PolicyGreedy{Estimator: q}); err != nil || a != Up {
		t.Errorf("Decide(greedy) = %v, %v; want up", a, err)
	}
}

func TestAction(t *testing.T) {
	for _, tt := range []struct {
		a    Action
		key  mdp.Action
		name string
	}{
		{Down, "-1", "down"},
		{Hold, "0", "hold"},
		{Up, "1", "up"},
	} {
		if tt.a.Key() != tt.key || tt.a.String() != tt.name {
			t.Errorf("%d: Key() = %s String() = %s", tt.a, tt.a.Key(), tt.a)
		}
		if got, err := ParseAction(tt.key); err != nil || got != tt.a {
			t.Errorf("ParseAction(%s) = %v, %v", tt.key, got, err)
		}
	}
	for _, key := range []mdp.Action{"2", "up", ""} {
		if _, err := ParseAction(key); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("ParseAction(%q) = %v, want ErrInvalidAction", key, err)
		}
	}
	if Action(5).Valid() || Action(5).String() != "Action(5)" {
		t.Errorf("Action(5) treated as valid")
	}
}
