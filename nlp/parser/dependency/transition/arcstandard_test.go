package transition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	nlp "depparse/nlp/types"
)

const (
	NSUBJ = iota
	ROOT
	DET
	DOBJ
	TMOD
	NUM_LABELS
)

// word i gets form 10+i and POS 20+i
func word(i, head, label int) nlp.Token {
	return nlp.Token{Form: 10 + i, POS: 20 + i, Head: head, Label: label}
}

var (
	// A dog barks
	DOG_BARKS = nlp.NewSentence(0, []nlp.Token{
		word(1, 2, 0),
		word(2, 3, 0),
		word(3, 0, 0),
	})

	// John saw a dog yesterday
	JOHN_SAW = nlp.NewSentence(1, []nlp.Token{
		word(1, 2, NSUBJ),
		word(2, 0, ROOT),
		word(3, 4, DET),
		word(4, 2, DOBJ),
		word(5, 2, TMOD),
	})

	JOHN_SAW_GOLD = []Action{
		Shift(), Shift(), Left(NSUBJ), Shift(), Shift(), Left(DET), Right(DOBJ), Shift(), Right(TMOD), Right(ROOT),
	}

	// heads 1->3, 2->4 cross
	CROSSING = nlp.NewSentence(2, []nlp.Token{
		word(1, 3, 0),
		word(2, 4, 0),
		word(3, 0, 0),
		word(4, 3, 0),
	})
)

func runOracle(t *testing.T, sys *ArcStandard, sent *nlp.Sentence) *State {
	s := NewState(sent)
	oracle := sys.Oracle()
	for !s.Terminal() {
		action, err := oracle.Transition(s)
		if err != nil {
			t.Fatalf("Oracle failed at %v: %v", s, err)
		}
		if err := sys.Transition(s, action); err != nil {
			t.Fatalf("Oracle action %d rejected at %v: %v", action, s, err)
		}
	}
	return s
}

func TestActionRoundTrip(t *testing.T) {
	for label := 0; label < 64; label++ {
		for _, act := range []Action{Left(label), Right(label)} {
			code := act.Encode()
			decoded, err := Decode(code)
			if err != nil {
				t.Fatalf("Decode(%d): %v", code, err)
			}
			if decoded != act {
				t.Errorf("Round trip of %v gave %v", act, decoded)
			}
			if LabelOf(code) != label {
				t.Errorf("LabelOf(%d) = %d, expected %d", code, LabelOf(code), label)
			}
		}
		if typ, _ := TypeOf(LeftAction(label)); typ != LEFT {
			t.Errorf("LeftAction(%d) decodes to %v", label, typ)
		}
		if typ, _ := TypeOf(RightAction(label)); typ != RIGHT {
			t.Errorf("RightAction(%d) decodes to %v", label, typ)
		}
	}
	if typ, _ := TypeOf(ShiftAction()); typ != SHIFT {
		t.Errorf("ShiftAction decodes to %v", typ)
	}
	if LabelOf(ShiftAction()) != -1 {
		t.Errorf("Shift label is %d", LabelOf(ShiftAction()))
	}
	if NumActions(4) != 9 {
		t.Errorf("NumActions(4) = %d", NumActions(4))
	}
}

func TestDecodeNegative(t *testing.T) {
	if _, err := Decode(-1); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}
}

func TestOracleScenario(t *testing.T) {
	sys := NewArcStandard(1)
	s := runOracle(t, sys, DOG_BARKS)
	expected := []Action{Shift(), Shift(), Left(0), Shift(), Left(0), Right(0)}
	if diff := cmp.Diff(expected, s.Actions()); diff != "" {
		t.Errorf("Oracle sequence (-want +got):\n%s", diff)
	}
}

func TestOracleReproducesGold(t *testing.T) {
	sys := NewArcStandard(NUM_LABELS)
	s := runOracle(t, sys, JOHN_SAW)
	if diff := cmp.Diff(JOHN_SAW.GoldHeads(), s.Heads()); diff != "" {
		t.Errorf("Heads (-gold +got):\n%s", diff)
	}
	if diff := cmp.Diff(JOHN_SAW.GoldLabels(), s.Labels()); diff != "" {
		t.Errorf("Labels (-gold +got):\n%s", diff)
	}
	if diff := cmp.Diff(JOHN_SAW_GOLD, s.Actions()); diff != "" {
		t.Errorf("Oracle sequence (-want +got):\n%s", diff)
	}
}

func TestStepCount(t *testing.T) {
	sys := NewArcStandard(NUM_LABELS)
	for _, sent := range []*nlp.Sentence{DOG_BARKS, JOHN_SAW, nlp.NewSentence(3, nil)} {
		s := runOracle(t, sys, sent)
		if expected := 2 * (sent.Len() - 1); s.Step() != expected {
			t.Errorf("Sentence of %d tokens took %d steps, expected %d", sent.Len(), s.Step(), expected)
		}
		if len(s.History()) != s.Step() {
			t.Errorf("History has %d actions after %d steps", len(s.History()), s.Step())
		}
	}
}

func TestRemainingDecreases(t *testing.T) {
	sys := NewArcStandard(NUM_LABELS)
	s := NewState(JOHN_SAW)
	if s.Remaining() != 2*(JOHN_SAW.Len()-1) {
		t.Fatalf("Initial remaining %d", s.Remaining())
	}
	for !s.Terminal() {
		before := s.Remaining()
		action, err := sys.Oracle().Transition(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := sys.Transition(s, action); err != nil {
			t.Fatal(err)
		}
		if s.Remaining() != before-1 {
			t.Errorf("Remaining went from %d to %d after %d", before, s.Remaining(), action)
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("Terminal state has %d remaining", s.Remaining())
	}
}

type snapshot struct {
	Step, Buffer, StackSize int
	S0                      int
	Heads, Labels, History  []int
}

func snap(s *State) snapshot {
	return snapshot{s.Step(), s.BufferHead(), s.StackSize(), s.Stack(0), s.Heads(), s.Labels(), s.History()}
}

func TestIllegalTransitionLeavesState(t *testing.T) {
	sys := NewArcStandard(NUM_LABELS)
	s := NewState(JOHN_SAW)
	before := snap(s)
	for _, action := range []int{LeftAction(0), RightAction(0)} {
		if err := sys.Transition(s, action); !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("Expected ErrIllegalTransition for %d, got %v", action, err)
		}
	}
	for _, action := range []int{-1, NumActions(NUM_LABELS), LeftAction(NUM_LABELS)} {
		if err := sys.Transition(s, action); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("Expected ErrInvalidAction for %d, got %v", action, err)
		}
		if sys.Allowed(s, action) {
			t.Errorf("Action %d allowed", action)
		}
	}
	if err := sys.Apply(s, Left(-1)); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction for negative label, got %v", err)
	}
	if diff := cmp.Diff(before, snap(s)); diff != "" {
		t.Errorf("Rejected actions changed the state (-before +after):\n%s", diff)
	}

	// with two stacked tokens LEFT would attach ROOT
	if err := sys.Transition(s, ShiftAction()); err != nil {
		t.Fatal(err)
	}
	if sys.Allowed(s, LeftAction(0)) {
		t.Error("LEFT allowed with ROOT as s1")
	}
	if !sys.Allowed(s, RightAction(0)) {
		t.Error("RIGHT not allowed with two stacked tokens")
	}

	done := runOracle(t, sys, JOHN_SAW)
	final := snap(done)
	if err := sys.Transition(done, ShiftAction()); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("Expected ErrIllegalTransition on terminal state, got %v", err)
	}
	if diff := cmp.Diff(final, snap(done)); diff != "" {
		t.Errorf("Rejected SHIFT changed the terminal state:\n%s", diff)
	}
}

func TestRestoreState(t *testing.T) {
	heads := []int{-1, 2, -1, -1, -1, -1}
	labels := []int{-1, NSUBJ, -1, -1, -1, -1}
	if _, err := RestoreState(JOHN_SAW, []int{0, 2}, JOHN_SAW.Len()+1, heads, labels); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("Expected ErrBufferOverflow, got %v", err)
	}
	if _, err := RestoreState(JOHN_SAW, []int{0, 9}, 3, heads, labels); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for stack index, got %v", err)
	}
	if _, err := RestoreState(JOHN_SAW, []int{0, 2}, 3, heads, make([]int, 5)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for label length, got %v", err)
	}
	unlabeled := []int{-1, -1, -1, -1, -1, -1}
	if _, err := RestoreState(JOHN_SAW, []int{0, 2}, 3, heads, unlabeled); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for unlabeled arc, got %v", err)
	}

	s, err := RestoreState(JOHN_SAW, []int{0, 2}, 3, heads, labels)
	if err != nil {
		t.Fatal(err)
	}
	if s.Stack(0) != 2 || s.Stack(1) != 0 {
		t.Errorf("Restored stack top %d, %d", s.Stack(0), s.Stack(1))
	}
	// saw still has a pending right child
	act, err := (&ArcStandardOracle{}).Next(s)
	if err != nil {
		t.Fatal(err)
	}
	if act != Shift() {
		t.Errorf("Expected SH, got %v", act)
	}
}

func TestDoneRightChildrenOf(t *testing.T) {
	heads := []int{-1, 2, -1, -1, -1, -1}
	labels := []int{-1, NSUBJ, -1, -1, -1, -1}
	s, err := RestoreState(JOHN_SAW, []int{0, 2}, 3, heads, labels)
	if err != nil {
		t.Fatal(err)
	}
	if DoneRightChildrenOf(s, 2) {
		t.Error("saw has unshifted children")
	}
	if !DoneRightChildrenOf(s, 1) {
		t.Error("John has no children")
	}
	if DoneRightChildrenOf(s, 4) {
		t.Error("dog has an unshifted child")
	}
	end, err := RestoreState(JOHN_SAW, []int{0, 2}, JOHN_SAW.Len(), heads, labels)
	if err != nil {
		t.Fatal(err)
	}
	if !DoneRightChildrenOf(end, 2) {
		t.Error("Empty buffer leaves no pending children")
	}

	// the cursor jumps from 1 straight to 4, never seeing token 2
	none := []int{-1, -1, -1, -1, -1}
	crossing, err := RestoreState(CROSSING, []int{0}, 1, none, none)
	if err != nil {
		t.Fatal(err)
	}
	if !DoneRightChildrenOf(crossing, 4) {
		t.Error("Scan did not skip to the head")
	}
}

func TestMissingGoldLabel(t *testing.T) {
	sent := nlp.NewSentence(4, []nlp.Token{word(1, 0, -1)})
	s := NewState(sent)
	sys := NewArcStandard(1)
	if err := sys.Transition(s, ShiftAction()); err != nil {
		t.Fatal(err)
	}
	if _, err := sys.Oracle().Transition(s); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}
}

func TestIsProjective(t *testing.T) {
	for _, sent := range []*nlp.Sentence{DOG_BARKS, JOHN_SAW} {
		if !IsProjective(sent) {
			t.Errorf("%v reported non-projective", sent)
		}
	}
	if IsProjective(CROSSING) {
		t.Error("Crossing arcs reported projective")
	}
	if IsProjectiveTree([]int{-1, 2, 1}) {
		t.Error("Cycle reported projective")
	}
	if IsProjectiveTree([]int{-1, 5}) {
		t.Error("Out of range head reported projective")
	}
}
