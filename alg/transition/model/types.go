package model

import (
	"errors"
	"fmt"

	"depparse/alg/featurevector"
)

var ErrDimension = errors.New("classifier dimension mismatch")

// Classifier scores every flat-encoded action for a configuration's
// features. Implementations must be deterministic for fixed parameters,
// and safe for concurrent use when a batched decoder runs with more than
// one worker.
type Classifier interface {
	Compute(features *featurevector.Vector) ([]float32, error)
	// ComputeBatch returns one score vector per input, in input order.
	ComputeBatch(features []*featurevector.Vector) ([][]float32, error)
}

// CheckScores verifies a score vector covers exactly numActions actions.
func CheckScores(scores []float32, numActions int) error {
	if len(scores) != numActions {
		return fmt.Errorf("%w: got %d scores for %d actions", ErrDimension, len(scores), numActions)
	}
	return nil
}

// Single adapts a function scoring one vector at a time into a
// Classifier whose batch call scores inputs sequentially.
type Single func(*featurevector.Vector) ([]float32, error)

var _ Classifier = Single(nil)

func (s Single) Compute(features *featurevector.Vector) ([]float32, error) {
	return s(features)
}

func (s Single) ComputeBatch(features []*featurevector.Vector) ([][]float32, error) {
	retval := make([][]float32, len(features))
	for i, f := range features {
		scores, err := s(f)
		if err != nil {
			return nil, err
		}
		retval[i] = scores
	}
	return retval, nil
}
