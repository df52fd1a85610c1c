package search

import (
	"errors"
	"fmt"
	"log"
	"math"

	"depparse/alg/featurevector"
	"depparse/alg/transition"
	TransitionModel "depparse/alg/transition/model"
)

var (
	ErrNoLegalAction = errors.New("no legal action")
	ErrStepBound     = errors.New("step bound exceeded")
	ErrNoSystem      = errors.New("can't parse without a transition system")
)

var SHOW_ORACLE = false

type ParseResultParameters struct {
	Examples []transition.Example
	Sequence transition.ConfigurationSequence
}

// Deterministic drives one configuration to a terminal state, greedily
// taking the best scoring allowed action at every step.
type Deterministic struct {
	Model              TransitionModel.Classifier
	TransFunc          transition.TransitionSystem
	FeatExtractor      transition.FeatureExtractor
	ReturnSequence     bool
	ShowConsiderations bool
	// MaxSteps bounds the number of actions per configuration; 0 means
	// twice the configuration size.
	MaxSteps int
}

// Parse decodes c in place.
func (d *Deterministic) Parse(c transition.Configuration) (*ParseResultParameters, error) {
	if d.TransFunc == nil || d.Model == nil || d.FeatExtractor == nil {
		return nil, ErrNoSystem
	}
	result := new(ParseResultParameters)
	d.record(result, c)
	bound := d.stepBound(c)
	for !c.Terminal() {
		if c.Step() >= bound {
			return result, fmt.Errorf("%w: %d steps at %v", ErrStepBound, c.Step(), c)
		}
		scores, err := d.Model.Compute(d.FeatExtractor.Features(c))
		if err != nil {
			return result, err
		}
		if err := d.apply(c, scores); err != nil {
			return result, err
		}
		d.record(result, c)
	}
	return result, nil
}

// ParseOracle follows the transition system's oracle from c to a terminal
// state. With a feature extractor set, every oracle decision is returned
// as an Example.
func (d *Deterministic) ParseOracle(c transition.Configuration) (*ParseResultParameters, error) {
	if d.TransFunc == nil {
		return nil, ErrNoSystem
	}
	oracle := d.TransFunc.Oracle()
	result := new(ParseResultParameters)
	d.record(result, c)
	if SHOW_ORACLE {
		log.Println(c.String())
	}
	bound := d.stepBound(c)
	for !c.Terminal() {
		if c.Step() >= bound {
			return result, fmt.Errorf("%w: %d steps at %v", ErrStepBound, c.Step(), c)
		}
		var features *featurevector.Vector
		if d.FeatExtractor != nil {
			features = d.FeatExtractor.Features(c)
		}
		action, err := oracle.Transition(c)
		if err != nil {
			return result, err
		}
		if err := d.TransFunc.Transition(c, action); err != nil {
			return result, err
		}
		if features != nil {
			result.Examples = append(result.Examples, transition.Example{Features: features, Action: action})
		}
		d.record(result, c)
		if SHOW_ORACLE {
			log.Println(c.String())
		}
	}
	return result, nil
}

func (d *Deterministic) stepBound(c transition.Configuration) int {
	if d.MaxSteps > 0 {
		return d.MaxSteps
	}
	return 2 * c.Size()
}

func (d *Deterministic) record(result *ParseResultParameters, c transition.Configuration) {
	if d.ReturnSequence {
		result.Sequence = append(result.Sequence, c.String())
	}
}

func (d *Deterministic) apply(c transition.Configuration, scores []float32) error {
	if err := TransitionModel.CheckScores(scores, d.TransFunc.NumActions()); err != nil {
		return err
	}
	if d.ShowConsiderations {
		log.Println(" Showing Considerations For", c)
	}
	best, ok := BestAllowed(d.TransFunc, c, scores, d.ShowConsiderations)
	if !ok {
		if d.ShowConsiderations {
			log.Println("No transitions possible")
		}
		return fmt.Errorf("%w: %v", ErrNoLegalAction, c)
	}
	if d.ShowConsiderations {
		log.Println("Chose transition", best)
	}
	return d.TransFunc.Transition(c, best)
}

// BestAllowed returns the allowed action with the highest score. Actions
// are visited in ascending id order and only a strictly greater score
// replaces the running best, so ties go to the lowest id. Only finite
// scores are considered; NaN and infinite scores are never chosen.
func BestAllowed(tf transition.TransitionSystem, c transition.Configuration, scores []float32, show bool) (int, bool) {
	var (
		best      int
		bestScore float32
		found     bool
	)
	for action, score := range scores {
		if !tf.Allowed(c, action) || math.IsNaN(float64(score)) || math.IsInf(float64(score), 0) {
			continue
		}
		if show {
			log.Println(" Considering transition", action, "  ", score)
		}
		if !found || score > bestScore {
			best, bestScore, found = action, score, true
		}
	}
	return best, found
}
