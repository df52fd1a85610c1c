package transition

import (
	"fmt"

	. "depparse/alg/transition"
)

// ArcStandard is the labeled arc-standard system with ROOT pre-stacked.
//
//	SH    (S     , i|B, A) => (S|i , B, A)
//	LA-r  (S|i|j , B  , A) => (S|j , B, A+{(j,r,i)})  if i != ROOT
//	RA-r  (S|i|j , B  , A) => (S|i , B, A+{(i,r,j)})
//
// Every operator checks its precondition before touching the State, so
// a rejected action leaves the configuration exactly as it was.
type ArcStandard struct {
	NumLabels int
	oracle    Oracle
}

// Verify that ArcStandard is a TransitionSystem
var _ TransitionSystem = &ArcStandard{}

func NewArcStandard(numLabels int) *ArcStandard {
	a := &ArcStandard{NumLabels: numLabels}
	a.AddDefaultOracle()
	return a
}

func (a *ArcStandard) Transition(from Configuration, action int) error {
	s, err := asState(from)
	if err != nil {
		return err
	}
	if action >= a.NumActions() {
		return fmt.Errorf("%w: %d with %d labels", ErrInvalidAction, action, a.NumLabels)
	}
	act, err := Decode(action)
	if err != nil {
		return err
	}
	return a.Apply(s, act)
}

// Apply performs a decoded action on s.
func (a *ArcStandard) Apply(s *State, act Action) error {
	if act.Type != SHIFT && (act.Label < 0 || act.Label >= a.NumLabels) {
		return fmt.Errorf("%w: %v with %d labels", ErrInvalidAction, act, a.NumLabels)
	}
	if !a.Legal(s, act.Type) {
		return fmt.Errorf("%w: %v at %v", ErrIllegalTransition, act, s)
	}
	switch act.Type {
	case SHIFT:
		s.push(s.buffer)
		s.advance()
	case LEFT:
		s0 := s.pop()
		s1 := s.pop()
		s.addArc(s1, s0, act.Label)
		s.push(s0)
	case RIGHT:
		s0 := s.pop()
		s1 := s.Stack(0)
		s.addArc(s0, s1, act.Label)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidAction, act)
	}
	s.record(act.Encode())
	return nil
}

// Legal is the structural precondition of a transition type.
func (a *ArcStandard) Legal(s *State, t Type) bool {
	switch t {
	case SHIFT:
		return s.buffer < s.sent.Len()
	case LEFT:
		return s.stack.Size() > 2
	case RIGHT:
		return s.stack.Size() > 1
	}
	return false
}

func (a *ArcStandard) Allowed(from Configuration, action int) bool {
	s, err := asState(from)
	if err != nil || action < 0 || action >= a.NumActions() {
		return false
	}
	t, _ := TypeOf(action)
	return a.Legal(s, t)
}

func (a *ArcStandard) NumActions() int {
	return NumActions(a.NumLabels)
}

func (a *ArcStandard) AddDefaultOracle() {
	a.oracle = &ArcStandardOracle{}
}

func (a *ArcStandard) Oracle() Oracle {
	return a.oracle
}

func (a *ArcStandard) Name() string {
	return "Arc Standard"
}

// ArcStandardOracle reads the gold tree off the State's sentence and
// returns the canonical arc-standard derivation of it. Results are only
// meaningful for projective trees.
type ArcStandardOracle struct{}

var _ Oracle = &ArcStandardOracle{}

// Given Gd=(Vd,Ad) # gold dependencies
// o(c = (S,B,A)) =
// RA-r  if (S[1],r,S[0]) in Ad and no (S[0],r',w) in Ad is pending in B
// LA-r  if (S[0],r,S[1]) in Ad
// SH    otherwise
func (o *ArcStandardOracle) Transition(conf Configuration) (int, error) {
	s, err := asState(conf)
	if err != nil {
		return 0, err
	}
	act, err := o.Next(s)
	if err != nil {
		return 0, err
	}
	return act.Encode(), nil
}

// Next is the oracle action for s in decoded form.
func (o *ArcStandardOracle) Next(s *State) (Action, error) {
	if s.stack.Size() < 2 {
		return Shift(), nil
	}
	s0, s1 := s.StackToken(0), s.StackToken(1)
	switch {
	case s0.Head == s1.ID && DoneRightChildrenOf(s, s0.ID):
		if s0.Label < 0 {
			return Action{}, fmt.Errorf("%w: token %d has no gold label", ErrInvalidAction, s0.ID)
		}
		return Right(s0.Label), nil
	case s1.Head == s0.ID:
		if s1.Label < 0 {
			return Action{}, fmt.Errorf("%w: token %d has no gold label", ErrInvalidAction, s1.ID)
		}
		return Left(s1.Label), nil
	}
	return Shift(), nil
}

func (o *ArcStandardOracle) Name() string {
	return "Arc Standard Static"
}

// DoneRightChildrenOf reports whether no unshifted token has head as its
// gold head. While the cursor is left of head it jumps straight to head;
// under projectivity nothing in between can be a pending child.
func DoneRightChildrenOf(s *State, head int) bool {
	n := s.sent.Len()
	index := s.buffer
	for index < n {
		if s.sent.Token(index).Head == head {
			return false
		}
		if head > index {
			index = head
		} else {
			index++
		}
	}
	return true
}
