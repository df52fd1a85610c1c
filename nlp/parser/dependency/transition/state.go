package transition

import (
	"errors"
	"fmt"

	"depparse/alg"
	"depparse/alg/transition"
	nlp "depparse/nlp/types"
)

var (
	ErrBufferOverflow = errors.New("buffer exceeds number of tokens")
	ErrInvalidState   = errors.New("invalid configuration")
)

// State is an arc-standard configuration over one sentence: a stack of
// token indices, a cursor into the remaining input and the arcs built
// so far. It is mutated in place by ArcStandard.
type State struct {
	sent    *nlp.Sentence
	step    int
	stack   *alg.StackArray
	buffer  int
	heads   []int
	labels  []int
	history []int
}

var _ transition.Configuration = &State{}

// NewState returns the initial configuration: ROOT alone on the stack
// and the buffer at the first word.
func NewState(sent *nlp.Sentence) *State {
	n := sent.Len()
	s := &State{
		sent:    sent,
		stack:   alg.NewStackArray(n),
		buffer:  1,
		heads:   make([]int, n),
		labels:  make([]int, n),
		history: make([]int, 0, 2*n),
	}
	if n == 0 {
		s.buffer = 0
	}
	s.stack.Push(0)
	for i := range s.heads {
		s.heads[i] = -1
		s.labels[i] = -1
	}
	return s
}

// RestoreState builds a configuration in the middle of a derivation.
// The stack is given bottom first. The restored state has an empty
// history.
func RestoreState(sent *nlp.Sentence, stack []int, buffer int, heads, labels []int) (*State, error) {
	n := sent.Len()
	if buffer < 0 || buffer > n {
		return nil, fmt.Errorf("%w: buffer at %d with %d tokens", ErrBufferOverflow, buffer, n)
	}
	if len(heads) != n || len(labels) != n {
		return nil, fmt.Errorf("%w: %d heads and %d labels for %d tokens", ErrInvalidState, len(heads), len(labels), n)
	}
	for _, idx := range stack {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: stack holds %d with %d tokens", ErrInvalidState, idx, n)
		}
	}
	for i := range heads {
		if heads[i] != -1 && labels[i] == -1 {
			return nil, fmt.Errorf("%w: token %d has a head but no label", ErrInvalidState, i)
		}
	}
	s := &State{
		sent:    sent,
		stack:   alg.NewStackArray(n),
		buffer:  buffer,
		heads:   append([]int(nil), heads...),
		labels:  append([]int(nil), labels...),
		history: make([]int, 0, 2*n),
	}
	for _, idx := range stack {
		s.stack.Push(idx)
	}
	return s, nil
}

func (s *State) Sentence() *nlp.Sentence {
	return s.sent
}

func (s *State) Terminal() bool {
	return s.buffer == s.sent.Len() && s.stack.Size() < 2
}

func (s *State) Size() int {
	return s.sent.Len()
}

func (s *State) Step() int {
	return s.step
}

// Remaining counts the actions left: every unshifted token still needs
// a SHIFT and an arc, every stacked token but the last needs an arc.
func (s *State) Remaining() int {
	left := 2*(s.sent.Len()-s.buffer) + s.stack.Size() - 1
	if left < 0 {
		return 0
	}
	return left
}

func (s *State) History() []int {
	return append([]int(nil), s.history...)
}

// Actions decodes the history.
func (s *State) Actions() []Action {
	retval := make([]Action, len(s.history))
	for i, code := range s.history {
		retval[i], _ = Decode(code)
	}
	return retval
}

func (s *State) StackSize() int {
	return s.stack.Size()
}

func (s *State) BufferHead() int {
	return s.buffer
}

// Stack returns the token index at position from the top, -1 if absent.
func (s *State) Stack(position int) int {
	idx, exists := s.stack.Index(position)
	if !exists {
		return -1
	}
	return idx
}

// Buffer returns the token index at position from the buffer head, -1
// if past the end of the sentence.
func (s *State) Buffer(position int) int {
	if position < 0 {
		return -1
	}
	idx := s.buffer + position
	if idx >= s.sent.Len() {
		return -1
	}
	return idx
}

func (s *State) Head(index int) int {
	if index < 0 || index >= len(s.heads) {
		return -1
	}
	return s.heads[index]
}

func (s *State) Label(index int) int {
	if index < 0 || index >= len(s.labels) {
		return -1
	}
	return s.labels[index]
}

func (s *State) Heads() []int {
	return append([]int(nil), s.heads...)
}

func (s *State) Labels() []int {
	return append([]int(nil), s.labels...)
}

func (s *State) Token(index int) nlp.Token {
	return s.sent.Token(index)
}

func (s *State) StackToken(position int) nlp.Token {
	return s.Token(s.Stack(position))
}

func (s *State) BufferToken(position int) nlp.Token {
	return s.Token(s.Buffer(position))
}

// Leftmost is the leftmost child of index.
func (s *State) Leftmost(index int) nlp.Token {
	return s.LeftmostFrom(index, 0)
}

// LeftmostFrom scans from..index-1 ascending for the first child of index.
func (s *State) LeftmostFrom(index, from int) nlp.Token {
	n := s.sent.Len()
	if index >= 0 && index < n && from >= 0 && from < index {
		for i := from; i < index; i++ {
			if s.heads[i] == index {
				return s.sent.Token(i)
			}
		}
	}
	return nlp.PAD
}

// Rightmost is the rightmost child of index.
func (s *State) Rightmost(index int) nlp.Token {
	return s.RightmostFrom(index, s.sent.Len()-1)
}

// RightmostFrom scans from..index+1 descending for the first child of index.
func (s *State) RightmostFrom(index, from int) nlp.Token {
	n := s.sent.Len()
	if index >= 0 && index < n && from > index && from < n {
		for i := from; i > index; i-- {
			if s.heads[i] == index {
				return s.sent.Token(i)
			}
		}
	}
	return nlp.PAD
}

// Graph snapshots the arcs built so far.
func (s *State) Graph() *nlp.Graph {
	return &nlp.Graph{Sentence: s.sent, Heads: s.Heads(), Labels: s.Labels()}
}

func (s *State) String() string {
	return fmt.Sprintf("step=%d, s0: %v, s1: %v, b0: %v, b1: %v",
		s.step, s.StackToken(0), s.StackToken(1), s.BufferToken(0), s.BufferToken(1))
}

func (s *State) push(index int) {
	s.stack.Push(index)
}

func (s *State) pop() int {
	index, _ := s.stack.Pop()
	return index
}

func (s *State) advance() {
	s.buffer++
}

func (s *State) addArc(index, head, label int) {
	s.heads[index] = head
	s.labels[index] = label
}

func (s *State) record(action int) {
	s.history = append(s.history, action)
	s.step++
}
