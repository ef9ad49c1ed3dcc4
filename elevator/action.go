package elevator

import (
	"fmt"
	"strconv"

	"github.com/CodeStranger-Fred/elevatormdp/mdp"
)

// Action is the controller's discrete acceleration command.
type Action int

const (
	Down Action = -1
	Hold Action = 0
	Up   Action = 1
)

func (a Action) String() string {
	switch a {
	case Down:
		return "down"
	case Hold:
		return "hold"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

func (a Action) Valid() bool {
	return a == Down || a == Hold || a == Up
}

// Key is the action's mdp name, its signed value ("-1", "0", "1").
func (a Action) Key() mdp.Action {
	return mdp.Action(strconv.Itoa(int(a)))
}

func ParseAction(key mdp.Action) (Action, error) {
	v, err := strconv.Atoi(string(key))
	if err != nil || !Action(v).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, key)
	}
	return Action(v), nil
}

// reverses reports whether taking a right after prev flips the direction.
func reverses(prev, a Action) bool {
	return prev != Hold && a == -prev
}
