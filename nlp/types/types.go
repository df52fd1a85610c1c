package types

import (
	"fmt"
	"strings"

	"depparse/util"
)

const (
	ROOT_TOKEN = "<ROOT>"
	ROOT_POS   = "ROOT"
	PAD_TOKEN  = "<PAD>"
	UNK_TOKEN  = "<UNK>"
)

// Ids reserved at the start of the form and POS dictionaries.
const (
	PAD_ID = iota
	ROOT_ID
	UNK_ID
)

const (
	APPROX_WORDS, APPROX_POS, APPROX_LABELS = 1024, 64, 64
)

// Token is one word of a sentence with its gold annotation.
// Head and Label are -1 where unknown.
type Token struct {
	ID    int
	Form  int
	POS   int
	Head  int
	Label int
}

var (
	// ROOT is prepended to every sentence and never receives a head.
	ROOT = Token{ID: 0, Form: ROOT_ID, POS: ROOT_ID, Head: -1, Label: -1}

	// PAD stands in for any position that falls outside a configuration.
	PAD = Token{ID: -1, Form: PAD_ID, POS: PAD_ID, Head: -1, Label: -1}
)

func (t Token) IsPad() bool {
	return t.ID < 0
}

func (t Token) String() string {
	if t.IsPad() {
		return PAD_TOKEN
	}
	return fmt.Sprintf("%d:%d/%d", t.ID, t.Form, t.POS)
}

// Sentence is an immutable token sequence with ROOT at index 0.
type Sentence struct {
	ID     int
	tokens []Token
}

// NewSentence prepends ROOT to words and renumbers every token by position.
func NewSentence(id int, words []Token) *Sentence {
	tokens := make([]Token, 0, len(words)+1)
	tokens = append(tokens, ROOT)
	for i, word := range words {
		word.ID = i + 1
		tokens = append(tokens, word)
	}
	return &Sentence{ID: id, tokens: tokens}
}

// Len counts tokens including ROOT.
func (s *Sentence) Len() int {
	return len(s.tokens)
}

func (s *Sentence) Token(index int) Token {
	if index < 0 || index >= len(s.tokens) {
		return PAD
	}
	return s.tokens[index]
}

func (s *Sentence) Tokens() []Token {
	retval := make([]Token, len(s.tokens))
	copy(retval, s.tokens)
	return retval
}

// GoldHeads and GoldLabels index by token position, ROOT included.
func (s *Sentence) GoldHeads() []int {
	retval := make([]int, len(s.tokens))
	for i, token := range s.tokens {
		retval[i] = token.Head
	}
	return retval
}

func (s *Sentence) GoldLabels() []int {
	retval := make([]int, len(s.tokens))
	for i, token := range s.tokens {
		retval[i] = token.Label
	}
	return retval
}

func (s *Sentence) String() string {
	forms := make([]string, len(s.tokens))
	for i, token := range s.tokens {
		forms[i] = token.String()
	}
	return strings.Join(forms, " ")
}

// Vocabulary groups the three dictionaries used to intern token attributes.
// The same instance must be used for every sentence fed to one model.
type Vocabulary struct {
	Words, POS, Labels *util.Dict
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		Words:  util.NewDict(APPROX_WORDS, UNK_TOKEN, PAD_TOKEN, ROOT_TOKEN, UNK_TOKEN),
		POS:    util.NewDict(APPROX_POS, UNK_TOKEN, PAD_TOKEN, ROOT_POS, UNK_TOKEN),
		Labels: util.NewDict(APPROX_LABELS, ""),
	}
}

func (v *Vocabulary) Freeze() {
	v.Words.Freeze()
	v.POS.Freeze()
	v.Labels.Freeze()
}

// NewToken interns raw attributes. An empty label leaves Label at -1.
func (v *Vocabulary) NewToken(form, pos string, head int, label string) Token {
	token := Token{
		Form:  v.Words.Intern(form),
		POS:   v.POS.Intern(pos),
		Head:  head,
		Label: -1,
	}
	if label != "" {
		token.Label = v.Labels.Intern(label)
	}
	return token
}
