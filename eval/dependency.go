package eval

import (
	"fmt"

	nlp "depparse/nlp/types"
)

const (
	HEAD_ERROR  = "head"
	LABEL_ERROR = "label"
	NO_HEAD     = "unattached"
)

// AttachmentError is one token whose predicted arc disagrees with gold.
type AttachmentError struct {
	Token            int
	Head, GoldHead   int
	Label, GoldLabel int
	class            string
}

func (e *AttachmentError) Class() string {
	return e.class
}

func (e *AttachmentError) String() string {
	return fmt.Sprintf("%s at %d: %d/%d (gold %d/%d)", e.class, e.Token, e.Head, e.Label, e.GoldHead, e.GoldLabel)
}

// DepEval scores every non-ROOT token of test against gold. The returned
// Result counts labeled attachment; its Other field holds the unlabeled
// Result. A correct arc is a TP, a wrong one an FP and a missing one an
// FN, so Accuracy is the attachment score.
func DepEval(test *nlp.Graph, gold *nlp.Sentence) (*Result, error) {
	if len(test.Heads) != gold.Len() || len(test.Labels) != gold.Len() {
		return nil, fmt.Errorf("parse has %d heads for %d tokens", len(test.Heads), gold.Len())
	}
	las, uas := &Result{}, &Result{}
	las.Other = uas
	for i := 1; i < gold.Len(); i++ {
		token := gold.Token(i)
		head, label := test.Heads[i], test.Labels[i]
		e := &AttachmentError{Token: i, Head: head, GoldHead: token.Head, Label: label, GoldLabel: token.Label}
		switch {
		case head < 0:
			uas.FN++
			las.FN++
			e.class = NO_HEAD
			las.Errors = append(las.Errors, e)
		case head != token.Head:
			uas.FP++
			las.FP++
			e.class = HEAD_ERROR
			las.Errors = append(las.Errors, e)
		case label != token.Label:
			uas.TP++
			las.FP++
			e.class = LABEL_ERROR
			las.Errors = append(las.Errors, e)
		default:
			uas.TP++
			las.TP++
		}
	}
	return las, nil
}

// Attachment accumulates labeled and unlabeled scores over a corpus.
type Attachment struct {
	Labeled, Unlabeled Total
}

func NewAttachment(keepResults bool) *Attachment {
	a := new(Attachment)
	if keepResults {
		a.Labeled.Results = make([]*Result, 0, 100)
	}
	return a
}

func (a *Attachment) Add(test *nlp.Graph, gold *nlp.Sentence) error {
	las, err := DepEval(test, gold)
	if err != nil {
		return err
	}
	a.Labeled.Add(las)
	a.Unlabeled.Add(las.Other.(*Result))
	return nil
}

func (a *Attachment) LAS() float64 {
	return a.Labeled.Accuracy()
}

func (a *Attachment) UAS() float64 {
	return a.Unlabeled.Accuracy()
}

func (a *Attachment) String() string {
	return fmt.Sprintf("LAS %.4f UAS %.4f exact %.4f (%d sentences)",
		a.LAS(), a.UAS(), a.Labeled.ExactMatch(), a.Labeled.Population)
}
