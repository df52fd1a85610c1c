package model

import (
	"fmt"
	"sync"

	"depparse/alg/featurevector"
)

type Channel int

const (
	WORD Channel = iota
	POS
	LABEL
)

var channelNames = [3]string{"word", "pos", "label"}

func (c Channel) String() string {
	if c < WORD || c > LABEL {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// MatrixSparse is a linear scorer. Each (channel, slot, feature value)
// maps to a dense row of per-action weights; absent entries weigh zero.
type MatrixSparse struct {
	sync.RWMutex
	Actions int
	Bias    []float32
	Mat     [3][]map[int][]float32
}

var _ Classifier = &MatrixSparse{}

func NewMatrixSparse(actions, words, pos, labels int) *MatrixSparse {
	m := &MatrixSparse{
		Actions: actions,
		Bias:    make([]float32, actions),
	}
	for c, slots := range [3]int{words, pos, labels} {
		m.Mat[c] = make([]map[int][]float32, slots)
		for i := range m.Mat[c] {
			m.Mat[c][i] = make(map[int][]float32)
		}
	}
	return m
}

func (m *MatrixSparse) row(channel Channel, slot int) (map[int][]float32, error) {
	if channel < WORD || channel > LABEL {
		return nil, fmt.Errorf("%w: unknown %v", ErrDimension, channel)
	}
	if slot < 0 || slot >= len(m.Mat[channel]) {
		return nil, fmt.Errorf("%w: %v slot %d of %d", ErrDimension, channel, slot, len(m.Mat[channel]))
	}
	return m.Mat[channel][slot], nil
}

// Set assigns the weight of action when slot of channel holds value.
func (m *MatrixSparse) Set(channel Channel, slot, value, action int, weight float32) error {
	if action < 0 || action >= m.Actions {
		return fmt.Errorf("%w: action %d of %d", ErrDimension, action, m.Actions)
	}
	m.Lock()
	defer m.Unlock()
	row, err := m.row(channel, slot)
	if err != nil {
		return err
	}
	weights, exists := row[value]
	if !exists {
		weights = make([]float32, m.Actions)
		row[value] = weights
	}
	weights[action] = weight
	return nil
}

func (m *MatrixSparse) SetBias(action int, weight float32) error {
	if action < 0 || action >= m.Actions {
		return fmt.Errorf("%w: action %d of %d", ErrDimension, action, m.Actions)
	}
	m.Lock()
	defer m.Unlock()
	m.Bias[action] = weight
	return nil
}

func (m *MatrixSparse) Compute(features *featurevector.Vector) ([]float32, error) {
	m.RLock()
	defer m.RUnlock()
	scores := make([]float32, m.Actions)
	copy(scores, m.Bias)
	for c, channel := range [3][]int{features.Word, features.POS, features.Label} {
		if len(channel) != len(m.Mat[c]) {
			return nil, fmt.Errorf("%w: %v channel has %d features, model expects %d",
				ErrDimension, Channel(c), len(channel), len(m.Mat[c]))
		}
		for slot, value := range channel {
			weights, exists := m.Mat[c][slot][value]
			if !exists {
				continue
			}
			for a, w := range weights {
				scores[a] += w
			}
		}
	}
	return scores, nil
}

func (m *MatrixSparse) ComputeBatch(features []*featurevector.Vector) ([][]float32, error) {
	retval := make([][]float32, len(features))
	for i, f := range features {
		scores, err := m.Compute(f)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		retval[i] = scores
	}
	return retval, nil
}
