package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"depparse/nlp/format/conll"
	"depparse/nlp/parser/dependency/transition"
	nlp "depparse/nlp/types"
	"depparse/util/conf"
)

const GOLD_CONLL = `1	A	a	DT	DT	_	2	det	_	_
2	dog	dog	NN	NN	_	3	nsubj	_	_
3	barks	bark	VBZ	VBZ	_	0	root	_	_

1	John	John	NNP	NNP	_	2	nsubj	_	_
2	saw	see	VBD	VBD	_	0	root	_	_
3	Mary	Mary	NNP	NNP	_	2	dobj	_	_
`

func readGold(t *testing.T, vocab *nlp.Vocabulary) (conll.Sentences, []*nlp.Sentence) {
	t.Helper()
	rows, err := conll.Read(strings.NewReader(GOLD_CONLL))
	if err != nil {
		t.Fatal(err)
	}
	sents, err := conll.Conll2SentenceCorpus(rows, vocab)
	if err != nil {
		t.Fatal(err)
	}
	return rows, sents
}

func TestSetupVocabulary(t *testing.T) {
	vocab := SetupVocabulary(&conf.Conf{Labels: []string{"root", "nsubj"}})
	if id, _ := vocab.Labels.IndexOf("nsubj"); id != 1 {
		t.Errorf("Configured label got id %d", id)
	}
	if id := vocab.Labels.Intern("det"); id != -1 {
		t.Errorf("Frozen inventory interned a new label as %d", id)
	}
	open := SetupVocabulary(conf.Default())
	if id := open.Labels.Intern("det"); id != 0 {
		t.Errorf("Open inventory interned det as %d", id)
	}
}

func TestLoadConf(t *testing.T) {
	defer func() { confFile, batchSize, workers, maxSteps = "", 0, 0, 0 }()
	dir := t.TempDir()
	confFile = filepath.Join(dir, "parser.yaml")
	if err := os.WriteFile(confFile, []byte("batch_size: 8\nworkers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	workers, maxSteps = 4, 100
	c, err := LoadConf()
	if err != nil {
		t.Fatal(err)
	}
	if c.BatchSize != 8 || c.Workers != 4 || c.MaxSteps != 100 {
		t.Errorf("Unexpected configuration %+v", c)
	}

	confFile = filepath.Join(dir, "missing.yaml")
	if _, err := LoadConf(); err == nil {
		t.Error("Missing configuration file accepted")
	}
}

func TestWriteSequence(t *testing.T) {
	vocab := nlp.NewVocabulary()
	_, sents := readGold(t, vocab)
	parser := transition.NewParser(vocab.Labels.Len(), nil, nil)
	seq, err := parser.GoldSequence(sents[0])
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeSequence(&buf, sents[0], seq, vocab.Labels); err != nil {
		t.Fatal(err)
	}
	expected := "0\tSH SH LA(det) SH LA(nsubj) RA(root)\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Sequence (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := writeExamples(&buf, sents[1], parser); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 6 {
		t.Errorf("Expected 6 examples, got %d", lines)
	}
}

func TestVerifyOracle(t *testing.T) {
	vocab := nlp.NewVocabulary()
	rows, sents := readGold(t, vocab)
	parser := transition.NewParser(vocab.Labels.Len(), nil, nil)
	graphs, scores, err := VerifyOracle(parser, sents)
	if err != nil {
		t.Fatal(err)
	}
	if scores.LAS() != 1 || scores.UAS() != 1 {
		t.Errorf("Oracle scored %v", scores)
	}
	out, err := conll.Graph2ConllCorpus(graphs, rows, vocab.Labels)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rows, out); diff != "" {
		t.Errorf("Oracle trees (-want +got):\n%s", diff)
	}

	// a gold label the frozen inventory does not know
	frozen := SetupVocabulary(&conf.Conf{Labels: []string{"det", "nsubj"}})
	_, unknown := readGold(t, frozen)
	parser = transition.NewParser(frozen.Labels.Len(), nil, nil)
	if _, _, err := VerifyOracle(parser, unknown); !errors.Is(err, transition.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}
}

func TestEvalCorpus(t *testing.T) {
	vocab := nlp.NewVocabulary()
	_, gold := readGold(t, vocab)
	parsedRows, err := conll.Read(strings.NewReader(strings.Replace(GOLD_CONLL, "2\tdobj", "2\tnsubj", 1)))
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := conll.Conll2SentenceCorpus(parsedRows, vocab)
	if err != nil {
		t.Fatal(err)
	}
	scores, err := EvalCorpus(parsed, gold)
	if err != nil {
		t.Fatal(err)
	}
	if scores.UAS() != 1 || scores.LAS() != 5.0/6.0 {
		t.Errorf("Unexpected scores %v", scores)
	}
	if _, err := EvalCorpus(parsed[:1], gold); err == nil {
		t.Error("Corpus length mismatch accepted")
	}
}
