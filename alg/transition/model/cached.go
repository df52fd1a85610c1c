package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/VictoriaMetrics/fastcache"

	"depparse/alg/featurevector"
)

// Cached memoizes the scores of a deterministic Classifier keyed by the
// byte encoding of the feature vector. Score rows above fastcache's
// 64KB entry limit are recomputed each time.
type Cached struct {
	Classifier Classifier
	cache      *fastcache.Cache
}

var _ Classifier = &Cached{}

func NewCached(c Classifier, maxBytes int) *Cached {
	return &Cached{Classifier: c, cache: fastcache.New(maxBytes)}
}

func encodeScores(scores []float32) []byte {
	buf := make([]byte, 4*len(scores))
	for i, s := range scores {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	return buf
}

func decodeScores(buf []byte) []float32 {
	scores := make([]float32, len(buf)/4)
	for i := range scores {
		scores[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return scores
}

func (c *Cached) lookup(key []byte) ([]float32, bool) {
	buf, exists := c.cache.HasGet(nil, key)
	if !exists {
		return nil, false
	}
	return decodeScores(buf), true
}

func (c *Cached) Compute(features *featurevector.Vector) ([]float32, error) {
	key := features.Key()
	if scores, exists := c.lookup(key); exists {
		return scores, nil
	}
	scores, err := c.Classifier.Compute(features)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, encodeScores(scores))
	return scores, nil
}

// ComputeBatch forwards only the cache misses to the wrapped classifier,
// in a single batch call. A miss repeated within the batch is scored once.
func (c *Cached) ComputeBatch(features []*featurevector.Vector) ([][]float32, error) {
	var (
		retval  = make([][]float32, len(features))
		keys    = make([][]byte, len(features))
		missing = make([]*featurevector.Vector, 0, len(features))
		// position in missing of every input that was not cached
		missIdx = make(map[int]int, len(features))
		seen    = make(map[string]int, len(features))
	)
	for i, f := range features {
		keys[i] = f.Key()
		if scores, exists := c.lookup(keys[i]); exists {
			retval[i] = scores
			continue
		}
		if j, exists := seen[string(keys[i])]; exists {
			missIdx[i] = j
			continue
		}
		seen[string(keys[i])] = len(missing)
		missIdx[i] = len(missing)
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		return retval, nil
	}
	computed, err := c.Classifier.ComputeBatch(missing)
	if err != nil {
		return nil, err
	}
	if len(computed) != len(missing) {
		return nil, fmt.Errorf("%w: batch of %d returned %d score vectors", ErrDimension, len(missing), len(computed))
	}
	for i, j := range missIdx {
		retval[i] = computed[j]
	}
	for _, f := range missing {
		key := f.Key()
		c.cache.Set(key, encodeScores(computed[seen[string(key)]]))
	}
	return retval, nil
}

func (c *Cached) Stats() fastcache.Stats {
	var s fastcache.Stats
	c.cache.UpdateStats(&s)
	return s
}

func (c *Cached) Reset() {
	c.cache.Reset()
}
