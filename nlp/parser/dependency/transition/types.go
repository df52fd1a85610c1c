package transition

import (
	"errors"
	"fmt"

	"depparse/alg/transition"
	nlp "depparse/nlp/types"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrConfigurationType = errors.New("wrong configuration type")
)

// DependencyConfiguration is a configuration that can report the arcs
// it has built.
type DependencyConfiguration interface {
	transition.Configuration
	Graph() *nlp.Graph
}

var _ DependencyConfiguration = &State{}

func asState(c transition.Configuration) (*State, error) {
	s, ok := c.(*State)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrConfigurationType, c)
	}
	return s, nil
}
