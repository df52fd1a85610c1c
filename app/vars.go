package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gosuri/uiprogress"

	"depparse/nlp/format/conll"
	nlp "depparse/nlp/types"
	"depparse/util/conf"
)

var (
	allOut       bool = true
	showProgress bool

	// file names
	input     string
	inputGold string
	outFile   string
	confFile  string

	// overrides of the configuration file
	batchSize, workers, maxSteps int
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag %s not set", flag)
		}
	}
	return nil
}

// LoadConf reads the configuration file, if any, and applies flag
// overrides on top of it.
func LoadConf() (*conf.Conf, error) {
	c := conf.Default()
	if confFile != "" {
		var err error
		if c, err = conf.ReadFile(confFile); err != nil {
			return nil, fmt.Errorf("failed reading configuration %s: %w", confFile, err)
		}
	}
	if batchSize > 0 {
		c.BatchSize = batchSize
	}
	if workers > 0 {
		c.Workers = workers
	}
	if maxSteps > 0 {
		c.MaxSteps = maxSteps
	}
	return c, c.Validate()
}

func ConfigOut(c *conf.Conf) {
	log.Println("Configuration")
	log.Printf("Configuration file:\t%s", confFile)
	log.Printf("Batch Size:\t\t%d", c.BatchSize)
	log.Printf("Workers:\t\t%d", c.Workers)
	log.Printf("Max Steps:\t\t%d", c.MaxSteps)
	log.Printf("Fixed Labels:\t\t%d", len(c.Labels))
	log.Println()
}

// SetupVocabulary interns the configured labels first so their ids are
// stable across corpora. A configured inventory is frozen.
func SetupVocabulary(c *conf.Conf) *nlp.Vocabulary {
	vocab := nlp.NewVocabulary()
	for _, label := range c.Labels {
		vocab.Labels.Intern(label)
	}
	if len(c.Labels) > 0 {
		vocab.Labels.Freeze()
	}
	return vocab
}

func ReadCorpus(filename string, vocab *nlp.Vocabulary) (conll.Sentences, []*nlp.Sentence, error) {
	if !VerifyExists(filename) {
		return nil, nil, fmt.Errorf("can't read %s", filename)
	}
	rows, err := conll.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	sents, err := conll.Conll2SentenceCorpus(rows, vocab)
	if err != nil {
		return nil, nil, err
	}
	if allOut {
		log.Println("Read", len(sents), "sentences from", filename)
	}
	return rows, sents, nil
}

// Output opens outFile, or stdout when it is unset.
func Output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type progress struct {
	bar *uiprogress.Bar
}

// StartProgress renders a bar over total items when -progress is set.
func StartProgress(total int) *progress {
	p := new(progress)
	if !showProgress || total == 0 {
		return p
	}
	uiprogress.Start()
	p.bar = uiprogress.AddBar(total)
	p.bar.AppendCompleted()
	p.bar.PrependElapsed()
	return p
}

func (p *progress) Incr() {
	if p.bar != nil {
		p.bar.Incr()
	}
}

func (p *progress) Stop() {
	if p.bar != nil {
		uiprogress.Stop()
	}
}
