package elevator

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultElevators   = 1
	DefaultFloors      = 5
	DefaultFloorHeight = 6
	DefaultSpeed       = 3
	DefaultCapacity    = 4
	DefaultStopTime    = 2

	// MaxFloors keeps the call flags of floors 1..F-1 inside a CallFlags mask.
	MaxFloors = 64
)

// Config is the static description of the building and its elevator.
// FloorHeight is in meters, Speed in meters per second, StopTime in seconds
// (time spent boarding and leaving at a stop).
type Config struct {
	Elevators   int     `yaml:"elevators"`
	Floors      int     `yaml:"floors"`
	FloorHeight float64 `yaml:"floor_height"`
	Speed       int     `yaml:"speed"`
	Capacity    int     `yaml:"capacity"`
	StopTime    float64 `yaml:"stop_time"`
}

func DefaultConfig() Config {
	return Config{
		Elevators:   DefaultElevators,
		Floors:      DefaultFloors,
		FloorHeight: DefaultFloorHeight,
		Speed:       DefaultSpeed,
		Capacity:    DefaultCapacity,
		StopTime:    DefaultStopTime,
	}
}

// Validate reports every violated bound, each wrapping ErrConfiguration.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...))
	}

	if c.Elevators != 1 {
		fail("only a single elevator is modelled, got %d", c.Elevators)
	}
	if c.Floors < 2 {
		fail("floors must be at least 2, got %d", c.Floors)
	}
	if c.Floors > MaxFloors {
		fail("floors must be at most %d, got %d", MaxFloors, c.Floors)
	}
	if c.Capacity < 0 {
		fail("capacity must not be negative, got %d", c.Capacity)
	}
	if c.Speed <= 0 {
		fail("speed must be positive, got %d", c.Speed)
	}
	if c.FloorHeight < 0 {
		fail("floor height must not be negative, got %g", c.FloorHeight)
	}
	if c.StopTime < 0 {
		fail("stop time must not be negative, got %g", c.StopTime)
	}
	if len(errs) == 0 {
		if _, ok := c.stateCount(); !ok {
			fail("state space of %d floors and capacity %d does not fit in an int", c.Floors, c.Capacity)
		}
	}
	return errors.Join(errs...)
}

// stateCount is 2^(F-1) * F * 3 * (C+1), with ok false on overflow.
func (c Config) stateCount() (int, bool) {
	n := uint64(1) << uint(c.Floors-1)
	for _, f := range []uint64{uint64(c.Floors), 3, uint64(c.Capacity) + 1} {
		hi, lo := bits.Mul64(n, f)
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = lo
	}
	return int(n), true
}

// LoadConfig decodes a YAML document over DefaultConfig, so absent keys
// keep their defaults. The result is not validated.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%w: decode %s: %v", ErrConfiguration, path, err)
	}
	return c, nil
}

// ApplyEnvFile overlays the ELEVATOR_* keys of a dotenv file onto c.
func ApplyEnvFile(c Config, path string) (Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return c, fmt.Errorf("read env file: %w", err)
	}

	ints := map[string]*int{
		"ELEVATOR_COUNT":    &c.Elevators,
		"ELEVATOR_FLOORS":   &c.Floors,
		"ELEVATOR_SPEED":    &c.Speed,
		"ELEVATOR_CAPACITY": &c.Capacity,
	}
	for key, dst := range ints {
		raw, ok := env[key]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q is not an integer", ErrConfiguration, key, raw)
		}
		*dst = v
	}

	floats := map[string]*float64{
		"ELEVATOR_FLOOR_HEIGHT": &c.FloorHeight,
		"ELEVATOR_STOP_TIME":    &c.StopTime,
	}
	for key, dst := range floats {
		raw, ok := env[key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q is not a number", ErrConfiguration, key, raw)
		}
		*dst = v
	}
	return c, nil
}
