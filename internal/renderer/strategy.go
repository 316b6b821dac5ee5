package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Strategy selects the sample-to-pixel mapping used in sequence mode
type Strategy int

const (
	StrategyDefault Strategy = iota
	StrategyExperimental
	StrategyLoudness

	numStrategies
)

// ErrInvalidStrategy is returned for a strategy outside the known set
var ErrInvalidStrategy = errors.New("invalid image generating strategy")

var strategyNames = [numStrategies]string{
	"default",
	"experimental",
	"loudness",
}

// String returns the strategy name used in progress output
func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool {
	return s >= 0 && s < numStrategies
}

// Validate returns an error naming the valid range if s is unknown
func (s Strategy) Validate() error {
	if !s.Valid() {
		return fmt.Errorf("%w (got %d, should be 0-%d)", ErrInvalidStrategy, int(s), int(numStrategies)-1)
	}
	return nil
}

// ParseStrategy accepts a strategy index ("1") or name ("experimental")
func ParseStrategy(v string) (Strategy, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		s := Strategy(n)
		return s, s.Validate()
	}
	for i, name := range strategyNames {
		if strings.EqualFold(v, name) {
			return Strategy(i), nil
		}
	}
	return StrategyDefault, fmt.Errorf("%w %q (want 0-%d or one of %s)", ErrInvalidStrategy, v,
		int(numStrategies)-1, strings.Join(strategyNames[:], ", "))
}
