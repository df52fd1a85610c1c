package conll

// Package Conll reads ConLL format files
// For a description see http://ilk.uvt.nl/conll/#dataformat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	nlp "depparse/nlp/types"
)

const (
	FIELD_SEPARATOR      = '\t'
	NUM_FIELDS           = 10
	FEATURES_SEPARATOR   = "|"
	FEATURE_SEPARATOR    = "="
	FEATURE_CONCAT_DELIM = ","
	NO_LABEL             = "None"
)

var ErrMalformed = errors.New("malformed conll")

type Features map[string]string

func (f Features) String() string {
	return FormatFeatures(f)
}

func FormatFeatures(feat map[string]string) string {
	if len(feat) == 0 {
		return "_"
	}
	strs := make([]string, 0, len(feat))
	for k, v := range feat {
		strs = append(strs, fmt.Sprintf("%v%v%v", k, FEATURE_SEPARATOR, v))
	}
	sort.Strings(strs)
	return strings.Join(strs, FEATURES_SEPARATOR)
}

// A Row is a single parsed row of a conll data set
// *Commented fields are not in use
type Row struct {
	ID      int
	Form    string
	Lemma   string
	CPosTag string
	PosTag  string
	Feats   Features
	FeatStr string
	Head    int
	DepRel  string
	// PHead int
	// PDepRel string
}

func (r Row) String() string {
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		formatString(r.Lemma),
		r.CPosTag,
		r.PosTag,
		FormatFeatures(r.Feats),
		strconv.Itoa(r.Head),
		r.DepRel,
		"_",
		"_"}
	return strings.Join(fields, "\t")
}

// A Sentence is a map of Rows using their ids
type Sentence map[int]Row

type Sentences []Sentence

func ParseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	i, err := strconv.ParseInt(value, 10, 0)
	return int(i), err
}

func ParseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

func formatString(value string) string {
	if value == "" {
		return "_"
	}
	return value
}

func ParseFeatures(featuresStr string) (Features, error) {
	var featureMap Features
	if featuresStr == "_" {
		return featureMap, nil
	}

	featureList := strings.Split(featuresStr, FEATURES_SEPARATOR)
	featureMap = make(Features, len(featureList))
	for _, featureStr := range featureList {
		featureKV := strings.Split(featureStr, FEATURE_SEPARATOR)
		if len(featureKV) != 2 {
			return nil, fmt.Errorf("wrong number of fields for split of feature %s", featureStr)
		}
		featName := featureKV[0]
		featValue := featureKV[1]
		existingFeatValue, featExist := featureMap[featName]
		if featExist {
			featureMap[featName] = existingFeatValue + FEATURE_CONCAT_DELIM + featValue
		} else {
			featureMap[featName] = featValue
		}
	}
	return featureMap, nil
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) < 8 {
		return row, fmt.Errorf("%w: %d fields", ErrMalformed, len(record))
	}
	id, err := ParseInt(record[0])
	if err != nil {
		return row, fmt.Errorf("error parsing ID field (%s): %w", record[0], err)
	}
	row.ID = id

	form := ParseString(record[1])
	if form == "" {
		return row, fmt.Errorf("%w: empty FORM field", ErrMalformed)
	}
	row.Form = form
	row.Lemma = ParseString(record[2])

	cpostag := ParseString(record[3])
	if cpostag == "" {
		return row, fmt.Errorf("%w: empty CPOSTAG field", ErrMalformed)
	}
	row.CPosTag = cpostag

	row.PosTag = ParseString(record[4])
	if row.PosTag == "" {
		row.PosTag = cpostag
	}

	head, err := ParseInt(record[6])
	if err != nil {
		return row, fmt.Errorf("error parsing HEAD field (%s): %w", record[6], err)
	}
	row.Head = head

	// unannotated input leaves DEPREL empty
	row.DepRel = ParseString(record[7])

	features, err := ParseFeatures(record[5])
	if err != nil {
		return row, fmt.Errorf("error parsing FEATS field (%s): %w", record[5], err)
	}
	row.Feats = features
	row.FeatStr = ParseString(record[5])
	return row, nil
}

// Read parses tab separated rows. The csv reader drops blank lines, so
// a row with id 1 starts a new sentence.
func Read(reader io.Reader) (Sentences, error) {
	var sentences Sentences
	csvReader := csv.NewReader(reader)
	csvReader.Comma = FIELD_SEPARATOR
	csvReader.Comment = '#'
	csvReader.FieldsPerRecord = NUM_FIELDS
	csvReader.LazyQuotes = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failure reading delimited file: %w", err)
	}

	var currentSent Sentence
	for i, record := range records {
		if record[0] == "1" {
			if currentSent != nil {
				sentences = append(sentences, currentSent)
			}
			currentSent = make(Sentence)
		}
		if currentSent == nil {
			return nil, fmt.Errorf("%w: record %d precedes the first token", ErrMalformed, i)
		}

		row, err := ParseRow(record)
		if err != nil {
			return nil, fmt.Errorf("error processing record %d at sentence %d: %w", i, len(sentences), err)
		}
		currentSent[row.ID] = row
	}
	if currentSent != nil {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func Write(writer io.Writer, sents Sentences) error {
	for _, sent := range sents {
		for i := 1; i <= len(sent); i++ {
			if _, err := io.WriteString(writer, sent[i].String()+"\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(writer, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(file, sents); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Conll2Sentence interns a sentence's rows into vocab and prepends ROOT.
// Rows must be numbered 1..n and heads must stay inside the sentence.
func Conll2Sentence(sent Sentence, id int, vocab *nlp.Vocabulary) (*nlp.Sentence, error) {
	words := make([]nlp.Token, len(sent))
	for i := 1; i <= len(sent); i++ {
		row, exists := sent[i]
		if !exists {
			return nil, fmt.Errorf("%w: sentence %d is missing row %d", ErrMalformed, id, i)
		}
		if row.Head < 0 || row.Head > len(sent) {
			return nil, fmt.Errorf("%w: sentence %d row %d has head %d", ErrMalformed, id, i, row.Head)
		}
		words[i-1] = vocab.NewToken(row.Form, row.CPosTag, row.Head, row.DepRel)
	}
	return nlp.NewSentence(id, words), nil
}

func Conll2SentenceCorpus(corpus Sentences, vocab *nlp.Vocabulary) ([]*nlp.Sentence, error) {
	sents := make([]*nlp.Sentence, len(corpus))
	for i, sent := range corpus {
		s, err := Conll2Sentence(sent, i, vocab)
		if err != nil {
			return nil, err
		}
		sents[i] = s
	}
	return sents, nil
}

// Graph2Conll copies source and overwrites its heads and relations with
// the arcs of graph. Tokens left without a head are written as attached
// to ROOT with relation None.
func Graph2Conll(graph *nlp.Graph, source Sentence, labels LabelNamer) Sentence {
	sent := make(Sentence, len(source))
	for id, row := range source {
		head, label := -1, -1
		if id < len(graph.Heads) {
			head, label = graph.Heads[id], graph.Labels[id]
		}
		if head < 0 {
			row.Head, row.DepRel = 0, NO_LABEL
		} else {
			row.Head = head
			row.DepRel = NO_LABEL
			if name, err := labels.Lookup(label); err == nil {
				row.DepRel = name
			}
		}
		sent[id] = row
	}
	return sent
}

// LabelNamer resolves label ids back to names.
type LabelNamer interface {
	Lookup(int) (string, error)
}

func Graph2ConllCorpus(graphs []*nlp.Graph, source Sentences, labels LabelNamer) (Sentences, error) {
	if len(graphs) != len(source) {
		return nil, fmt.Errorf("%d graphs for %d sentences", len(graphs), len(source))
	}
	sents := make(Sentences, len(graphs))
	for i, graph := range graphs {
		if graph == nil {
			graph = &nlp.Graph{}
		}
		sents[i] = Graph2Conll(graph, source[i], labels)
	}
	return sents, nil
}
