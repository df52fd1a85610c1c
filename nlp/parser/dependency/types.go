package dependency

import (
	. "depparse/nlp/types"
)

type DependencyParser interface {
	Parse(*Sentence) (*Graph, error)
	ParseAll([]*Sentence) ([]*Graph, error)
}

// Dependency pairs a parser with the vocabulary its input was interned
// with.
type Dependency struct {
	Vocabulary *Vocabulary
	Parser     DependencyParser
}

func (d *Dependency) Parse(sent *Sentence) (*Graph, error) {
	return d.Parser.Parse(sent)
}

func (d *Dependency) ParseAll(sents []*Sentence) ([]*Graph, error) {
	return d.Parser.ParseAll(sents)
}
