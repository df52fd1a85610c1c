package transition

import (
	"fmt"

	"depparse/alg/featurevector"
	"depparse/alg/transition"
	nlp "depparse/nlp/types"
)

const (
	WORD_FEATURES  = 20
	POS_FEATURES   = 20
	LABEL_FEATURES = 12
)

// Slot names in extraction order. The last twelve also feed the label
// channel.
var SlotNames = [WORD_FEATURES]string{
	"s0", "s1", "s2", "s3",
	"b0", "b1", "b2", "b3",
	"s0l1", "s0r1", "s0l2", "s0r2",
	"s1l1", "s1r1", "s1l2", "s1r2",
	"s0l1l1", "s0r1l1", "s1l1l1", "s1r1l1",
}

// Extractor reads the fixed window of stack, buffer and child positions
// off a State. Label ids in the label channel come from the State, not
// the gold annotation; PAD slots emit NumLabels and attached-but-unseen
// tokens NumLabels+1.
type Extractor struct {
	NumLabels int
}

var _ transition.FeatureExtractor = &Extractor{}

func (x *Extractor) PadLabel() int {
	return x.NumLabels
}

func (x *Extractor) NoLabel() int {
	return x.NumLabels + 1
}

func (x *Extractor) Features(c transition.Configuration) *featurevector.Vector {
	s, ok := c.(*State)
	if !ok {
		panic(fmt.Sprintf("Got wrong configuration type %T", c))
	}
	return x.Extract(s)
}

// Slots resolves the twenty window positions of s to tokens.
func (x *Extractor) Slots(s *State) [WORD_FEATURES]nlp.Token {
	var slots [WORD_FEATURES]nlp.Token
	for i := 0; i < 4; i++ {
		slots[i] = s.StackToken(i)
		slots[4+i] = s.BufferToken(i)
	}
	s0, s1 := slots[0], slots[1]

	lc1s0 := s.Leftmost(s0.ID)
	rc1s0 := s.Rightmost(s0.ID)
	lc1s1 := s.Leftmost(s1.ID)
	rc1s1 := s.Rightmost(s1.ID)

	slots[8] = lc1s0
	slots[9] = rc1s0
	slots[10] = s.LeftmostFrom(s0.ID, lc1s0.ID+1)
	slots[11] = s.RightmostFrom(s0.ID, rc1s0.ID-1)
	slots[12] = lc1s1
	slots[13] = rc1s1
	slots[14] = s.LeftmostFrom(s1.ID, lc1s1.ID+1)
	slots[15] = s.RightmostFrom(s1.ID, rc1s1.ID-1)

	slots[16] = s.Leftmost(lc1s0.ID)
	slots[17] = s.Leftmost(rc1s0.ID)
	slots[18] = s.Leftmost(lc1s1.ID)
	slots[19] = s.Leftmost(rc1s1.ID)
	return slots
}

func (x *Extractor) Extract(s *State) *featurevector.Vector {
	slots := x.Slots(s)
	v := featurevector.New(WORD_FEATURES, POS_FEATURES, LABEL_FEATURES)
	for i, token := range slots {
		v.Word[i] = token.Form
		v.POS[i] = token.POS
	}
	for i, token := range slots[WORD_FEATURES-LABEL_FEATURES:] {
		v.Label[i] = x.label(s, token)
	}
	return v
}

func (x *Extractor) label(s *State, token nlp.Token) int {
	if token.IsPad() {
		return x.PadLabel()
	}
	if label := s.Label(token.ID); label >= 0 {
		return label
	}
	return x.NoLabel()
}
