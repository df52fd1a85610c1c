package transition

import (
	"depparse/alg/search"
	"depparse/alg/transition"
	"depparse/alg/transition/model"
	"depparse/nlp/parser/dependency"
	nlp "depparse/nlp/types"
	"depparse/util/conf"
)

// Parser is the arc-standard dependency parser: the transition system,
// its feature window and a scoring model behind greedy and batched
// decoders.
type Parser struct {
	System    *ArcStandard
	Extractor *Extractor
	Model     model.Classifier
	Conf      *conf.Conf
}

var _ dependency.DependencyParser = &Parser{}

// NewParser builds a parser for numLabels labels. A nil c means
// conf.Default().
func NewParser(numLabels int, m model.Classifier, c *conf.Conf) *Parser {
	if c == nil {
		c = conf.Default()
	}
	if m != nil && c.CacheBytes > 0 {
		m = model.NewCached(m, c.CacheBytes)
	}
	return &Parser{
		System:    NewArcStandard(numLabels),
		Extractor: &Extractor{NumLabels: numLabels},
		Model:     m,
		Conf:      c,
	}
}

func (p *Parser) decoder() *search.Deterministic {
	return &search.Deterministic{
		Model:              p.Model,
		TransFunc:          p.System,
		FeatExtractor:      p.Extractor,
		ShowConsiderations: p.Conf.ShowConsiderations,
		MaxSteps:           p.Conf.MaxSteps,
	}
}

// Decode greedily parses sent and returns the final State.
func (p *Parser) Decode(sent *nlp.Sentence) (*State, error) {
	s := NewState(sent)
	_, err := p.decoder().Parse(s)
	return s, err
}

func (p *Parser) Parse(sent *nlp.Sentence) (*nlp.Graph, error) {
	s, err := p.Decode(sent)
	if err != nil {
		return nil, err
	}
	return s.Graph(), nil
}

// DecodeAll parses sents in size-sorted groups. States are returned in
// input order; failed ones are reported through a joined
// *search.ParseError and stay where decoding stopped.
func (p *Parser) DecodeAll(sents []*nlp.Sentence) ([]*State, error) {
	states := make([]*State, len(sents))
	confs := make([]transition.Configuration, len(sents))
	for i, sent := range sents {
		states[i] = NewState(sent)
		confs[i] = states[i]
	}
	batch := &search.Batch{
		Deterministic: *p.decoder(),
		BatchSize:     p.Conf.BatchSize,
		Workers:       p.Conf.Workers,
	}
	return states, batch.ParseAll(confs)
}

// ParseAll returns one Graph per sentence, nil for sentences that failed.
func (p *Parser) ParseAll(sents []*nlp.Sentence) ([]*nlp.Graph, error) {
	states, err := p.DecodeAll(sents)
	graphs := make([]*nlp.Graph, len(states))
	for i, s := range states {
		if s.Terminal() {
			graphs[i] = s.Graph()
		}
	}
	return graphs, err
}

func (p *Parser) oracle(sent *nlp.Sentence, features, sequence bool) (*State, *search.ParseResultParameters, error) {
	d := &search.Deterministic{
		TransFunc:      p.System,
		ReturnSequence: sequence,
		MaxSteps:       p.Conf.MaxSteps,
	}
	if features {
		d.FeatExtractor = p.Extractor
	}
	s := NewState(sent)
	result, err := d.ParseOracle(s)
	return s, result, err
}

// GoldSequence is the oracle derivation of sent's gold tree.
func (p *Parser) GoldSequence(sent *nlp.Sentence) ([]Action, error) {
	s, _, err := p.oracle(sent, false, false)
	if err != nil {
		return nil, err
	}
	return s.Actions(), nil
}

// Examples pairs the features of every configuration on the oracle path
// with the action the oracle took from it.
func (p *Parser) Examples(sent *nlp.Sentence) ([]transition.Example, error) {
	_, result, err := p.oracle(sent, true, false)
	if err != nil {
		return nil, err
	}
	return result.Examples, nil
}

// Trace snapshots every configuration on the oracle path, initial one
// included.
func (p *Parser) Trace(sent *nlp.Sentence) (transition.ConfigurationSequence, error) {
	_, result, err := p.oracle(sent, false, true)
	if result == nil {
		return nil, err
	}
	return result.Sequence, err
}

// Verify runs the oracle over sent and returns the resulting State; the
// State reproduces the gold tree exactly when sent is projective.
func (p *Parser) Verify(sent *nlp.Sentence) (*State, error) {
	s, _, err := p.oracle(sent, false, false)
	return s, err
}
