package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"depparse/alg/search"
	"depparse/nlp/parser/dependency/transition"
	nlp "depparse/nlp/types"
	"depparse/util"
)

var (
	oracleFeatures bool
)

// ActionName renders act with its label spelled out, e.g. LA(nsubj).
func ActionName(act transition.Action, labels *util.Dict) string {
	if act.Type == transition.SHIFT {
		return act.Type.String()
	}
	return fmt.Sprintf("%v(%s)", act.Type, labels.ValueOf(act.Label))
}

func writeSequence(w io.Writer, sent *nlp.Sentence, seq []transition.Action, labels *util.Dict) error {
	names := make([]string, len(seq))
	for i, act := range seq {
		names[i] = ActionName(act, labels)
	}
	_, err := fmt.Fprintf(w, "%d\t%s\n", sent.ID, strings.Join(names, " "))
	return err
}

func writeExamples(w io.Writer, sent *nlp.Sentence, parser *transition.Parser) error {
	examples, err := parser.Examples(sent)
	if err != nil {
		return err
	}
	for _, ex := range examples {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%v\n", sent.ID, ex.Action, ex.Features.Flat()); err != nil {
			return err
		}
	}
	return nil
}

func OracleGold(cmd *commander.Command, args []string) error {
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
	_, sents, err := ReadCorpus(input, vocab)
	if err != nil {
		return err
	}
	parser := transition.NewParser(vocab.Labels.Len(), nil, c)

	out, err := Output()
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	var skipped int
	bar := StartProgress(len(sents))
	for _, sent := range sents {
		bar.Incr()
		if !transition.IsProjective(sent) {
			skipped++
			continue
		}
		if oracleFeatures {
			err = writeExamples(w, sent, parser)
		} else {
			var seq []transition.Action
			if seq, err = parser.GoldSequence(sent); err == nil {
				err = writeSequence(w, sent, seq, vocab.Labels)
			}
		}
		if err != nil {
			bar.Stop()
			return fmt.Errorf("sentence %d: %w", sent.ID, err)
		}
	}
	bar.Stop()
	if allOut {
		log.Println("Skipped", skipped, "non-projective sentences")
	}
	return w.Flush()
}

func OracleCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       OracleGold,
		UsageLine: "oracle <file options> [arguments]",
		Short:     "prints the static oracle derivation of a gold corpus",
		Long: `
prints the arc-standard derivation of every projective sentence in a gold
CoNLL corpus, or the training examples along it

	$ ./depparse oracle -in <gold conll> [-out <file>] [-features] [options]

`,
		Flag: *flag.NewFlagSet("oracle", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Gold CoNLL File")
	cmd.Flag.StringVar(&outFile, "out", "", "Optional - Output File (default stdout)")
	cmd.Flag.StringVar(&confFile, "c", "", "Optional - Configuration File")
	cmd.Flag.BoolVar(&oracleFeatures, "features", false, "Write feature vectors and actions instead of action sequences")
	cmd.Flag.IntVar(&maxSteps, "steps", 0, "Optional - Step bound (0 = 2n)")
	cmd.Flag.BoolVar(&search.SHOW_ORACLE, "showoracle", false, "Show oracle transitions")
	cmd.Flag.BoolVar(&showProgress, "progress", false, "Show a progress bar")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose logging")
	return cmd
}
