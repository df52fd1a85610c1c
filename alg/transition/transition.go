package transition

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"depparse/alg/featurevector"
)

// Configuration is the mutable state a transition system advances one
// action at a time.
type Configuration interface {
	Terminal() bool

	// Size is the number of input items, used to bucket configurations
	// of similar length together.
	Size() int
	// Step counts the actions applied so far.
	Step() int
	// Remaining is the exact number of actions left before Terminal holds.
	Remaining() int
	History() []int

	String() string
}

// TransitionSystem applies flat-encoded actions to configurations.
type TransitionSystem interface {
	// Transition applies action in place. It fails without mutating c
	// when the action is undecodable or not allowed.
	Transition(c Configuration, action int) error
	Allowed(c Configuration, action int) bool
	NumActions() int

	Oracle() Oracle
	Name() string
}

// Decision picks the next action for a configuration.
type Decision interface {
	Transition(Configuration) (int, error)
}

type Oracle interface {
	Decision
	Name() string
}

type FeatureExtractor interface {
	Features(Configuration) *featurevector.Vector
}

// Example is one supervised decision: the features of a configuration
// and the action taken from it.
type Example struct {
	Features *featurevector.Vector
	Action   int
}

// ConfigurationSequence holds snapshots of a configuration, oldest first.
type ConfigurationSequence []string

func (seq ConfigurationSequence) String() string {
	var buf bytes.Buffer
	w := new(tabwriter.Writer)
	w.Init(&buf, 0, 8, 0, '\t', 0)
	for i, conf := range seq {
		fmt.Fprintf(w, "%d\t%s\n", i, conf)
	}
	w.Flush()
	return buf.String()
}

// SharedTransitions is the length of the common prefix of two action
// histories.
func SharedTransitions(a, b []int) int {
	shared := 0
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			break
		}
		shared++
	}
	return shared
}
