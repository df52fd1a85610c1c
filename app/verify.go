package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"depparse/alg/search"
	"depparse/eval"
	"depparse/nlp/format/conll"
	"depparse/nlp/parser/dependency/transition"
	nlp "depparse/nlp/types"
)

var ErrOracleMismatch = errors.New("oracle did not reproduce the gold tree")

// VerifyOracle replays the oracle over every projective sentence of sents
// and scores the result against the gold trees. Non-projective sentences
// yield nil graphs.
func VerifyOracle(parser *transition.Parser, sents []*nlp.Sentence) ([]*nlp.Graph, *eval.Attachment, error) {
	graphs := make([]*nlp.Graph, len(sents))
	scores := eval.NewAttachment(false)
	var mismatched int
	bar := StartProgress(len(sents))
	defer bar.Stop()
	for i, sent := range sents {
		bar.Incr()
		if !transition.IsProjective(sent) {
			continue
		}
		s, err := parser.Verify(sent)
		if err != nil {
			return nil, nil, fmt.Errorf("sentence %d: %w", sent.ID, err)
		}
		graphs[i] = s.Graph()
		before := scores.Labeled.Exact
		if err := scores.Add(graphs[i], sent); err != nil {
			return nil, nil, err
		}
		if scores.Labeled.Exact == before {
			mismatched++
			log.Println("Mismatch at sentence", sent.ID)
		}
	}
	if mismatched > 0 {
		return graphs, scores, fmt.Errorf("%w in %d sentences", ErrOracleMismatch, mismatched)
	}
	return graphs, scores, nil
}

func VerifyGold(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in"}); err != nil {
		return err
	}
	c, err := LoadConf()
	if err != nil {
		return err
	}
	if allOut {
		ConfigOut(c)
	}
	vocab := SetupVocabulary(c)
	rows, sents, err := ReadCorpus(input, vocab)
	if err != nil {
		return err
	}
	parser := transition.NewParser(vocab.Labels.Len(), nil, c)

	graphs, scores, err := VerifyOracle(parser, sents)
	if scores != nil {
		log.Println("Oracle", scores)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		out, err := conll.Graph2ConllCorpus(graphs, rows, vocab.Labels)
		if err != nil {
			return err
		}
		if err := conll.WriteFile(outFile, out); err != nil {
			return err
		}
		if allOut {
			log.Println("Wrote", len(out), "sentences to", outFile)
		}
	}
	return nil
}

func VerifyCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       VerifyGold,
		UsageLine: "verify <file options> [arguments]",
		Short:     "checks the oracle reproduces every projective gold tree",
		Long: `
replays the static oracle over a gold CoNLL corpus and compares the
resulting trees to the gold ones

	$ ./depparse verify -in <gold conll> [-out <conll>] [options]

`,
		Flag: *flag.NewFlagSet("verify", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Gold CoNLL File")
	cmd.Flag.StringVar(&outFile, "out", "", "Optional - Output CoNLL File of the oracle trees")
	cmd.Flag.StringVar(&confFile, "c", "", "Optional - Configuration File")
	cmd.Flag.IntVar(&maxSteps, "steps", 0, "Optional - Step bound (0 = 2n)")
	cmd.Flag.BoolVar(&search.SHOW_ORACLE, "showoracle", false, "Show oracle transitions")
	cmd.Flag.BoolVar(&showProgress, "progress", false, "Show a progress bar")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose logging")
	return cmd
}
