package elevator

import "errors"

var (
	// ErrConfiguration is returned when a model is built from an invalid
	// configuration.
	ErrConfiguration = errors.New("elevator: invalid configuration")

	// ErrInvalidState is returned for states outside the model's domains.
	ErrInvalidState = errors.New("elevator: invalid state")

	ErrInvalidAction   = errors.New("elevator: invalid action")
	ErrIllegalAction   = errors.New("elevator: action not legal in state")
	ErrDirectionSwitch = errors.New("elevator: direction switch without intervening hold")
)
