package app

import (
	"fmt"
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"depparse/eval"
	nlp "depparse/nlp/types"
)

// ParsedGraph reads the arcs of an annotated sentence back as a Graph.
func ParsedGraph(sent *nlp.Sentence) *nlp.Graph {
	return &nlp.Graph{Sentence: sent, Heads: sent.GoldHeads(), Labels: sent.GoldLabels()}
}

// EvalCorpus scores parsed against gold sentence by sentence. Both sides
// must be interned through the same Vocabulary.
func EvalCorpus(parsed, gold []*nlp.Sentence) (*eval.Attachment, error) {
	if len(parsed) != len(gold) {
		return nil, fmt.Errorf("%d parsed sentences for %d gold", len(parsed), len(gold))
	}
	scores := eval.NewAttachment(true)
	for i := range gold {
		if err := scores.Add(ParsedGraph(parsed[i]), gold[i]); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
	}
	return scores, nil
}

func DepEval(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "ing"}); err != nil {
		return err
	}
	c, err := LoadConf()
	if err != nil {
		return err
	}
	vocab := SetupVocabulary(c)
	_, gold, err := ReadCorpus(inputGold, vocab)
	if err != nil {
		return err
	}
	_, parsed, err := ReadCorpus(input, vocab)
	if err != nil {
		return err
	}
	scores, err := EvalCorpus(parsed, gold)
	if err != nil {
		return err
	}
	if allOut {
		for class, count := range scores.Labeled.Errors().ByType() {
			log.Printf("%s errors:\t%d", class, count)
		}
	}
	fmt.Println(scores)
	return nil
}

func DepEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepEval,
		UsageLine: "depeval <file options>",
		Short:     "scores a parsed CoNLL corpus against gold",
		Long: `
computes labeled and unlabeled attachment scores of a parsed CoNLL corpus

	$ ./depparse depeval -in <parsed conll> -ing <gold conll>

`,
		Flag: *flag.NewFlagSet("depeval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "in", "", "Parsed CoNLL File")
	cmd.Flag.StringVar(&inputGold, "ing", "", "Gold CoNLL File")
	cmd.Flag.StringVar(&confFile, "c", "", "Optional - Configuration File")
	cmd.Flag.BoolVar(&allOut, "v", true, "Verbose logging")
	return cmd
}
