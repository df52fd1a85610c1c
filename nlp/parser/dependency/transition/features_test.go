package transition

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	nlp "depparse/nlp/types"
)

func TestExtractorWindow(t *testing.T) {
	sys := NewArcStandard(NUM_LABELS)
	s := NewState(JOHN_SAW)
	// SH SH LA SH SH LA RA leaves [ROOT saw] with yesterday in the buffer
	for _, act := range JOHN_SAW_GOLD[:7] {
		if err := sys.Apply(s, act); err != nil {
			t.Fatal(err)
		}
	}
	x := &Extractor{NumLabels: NUM_LABELS}
	v := x.Extract(s)

	r, p := nlp.ROOT_ID, nlp.PAD_ID
	expectedWords := []int{
		12, r, p, p,
		15, p, p, p,
		11, 14, p, p,
		p, p, p, p,
		p, 13, p, p,
	}
	expectedPOS := []int{
		22, r, p, p,
		25, p, p, p,
		21, 24, p, p,
		p, p, p, p,
		p, 23, p, p,
	}
	pad := x.PadLabel()
	expectedLabels := []int{
		NSUBJ, DOBJ, pad, pad,
		pad, pad, pad, pad,
		pad, DET, pad, pad,
	}
	if diff := cmp.Diff(expectedWords, v.Word); diff != "" {
		t.Errorf("Word features (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expectedPOS, v.POS); diff != "" {
		t.Errorf("POS features (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expectedLabels, v.Label); diff != "" {
		t.Errorf("Label features (-want +got):\n%s", diff)
	}
}

func TestExtractorInitial(t *testing.T) {
	x := &Extractor{NumLabels: NUM_LABELS}
	v := x.Features(NewState(DOG_BARKS))
	if len(v.Word) != WORD_FEATURES || len(v.POS) != POS_FEATURES || len(v.Label) != LABEL_FEATURES {
		t.Fatalf("Wrong channel sizes %d %d %d", len(v.Word), len(v.POS), len(v.Label))
	}
	if v.Word[0] != nlp.ROOT_ID || v.Word[4] != 11 || v.Word[5] != 12 || v.Word[6] != 13 || v.Word[7] != nlp.PAD_ID {
		t.Errorf("Unexpected stack/buffer window %v", v.Word[:8])
	}
	for i, label := range v.Label {
		if label != x.PadLabel() {
			t.Errorf("Label slot %d is %d before any arc", i, label)
		}
	}
	if x.PadLabel() == x.NoLabel() || x.PadLabel() < NUM_LABELS || x.NoLabel() < NUM_LABELS {
		t.Error("Label sentinels collide with real labels")
	}
}

func TestExtractorUsesPredictedLabels(t *testing.T) {
	// predicted label differs from gold
	heads := []int{-1, 2, -1, -1, -1, -1}
	labels := []int{-1, TMOD, -1, -1, -1, -1}
	s, err := RestoreState(JOHN_SAW, []int{0, 2}, 3, heads, labels)
	if err != nil {
		t.Fatal(err)
	}
	x := &Extractor{NumLabels: NUM_LABELS}
	if v := x.Extract(s); v.Label[0] != TMOD {
		t.Errorf("Expected predicted label %d for s0l1, got %d", TMOD, v.Label[0])
	}
}
