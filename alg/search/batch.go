package search

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"depparse/alg/featurevector"
	"depparse/alg/transition"
	TransitionModel "depparse/alg/transition/model"
)

// ParseError reports the failure of one configuration in a batch.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("configuration %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Batch decodes many configurations, stepping each group of similar size
// in lockstep with a single batched scoring call per step. Groups are
// independent of each other and run on a worker pool when Workers > 1.
type Batch struct {
	Deterministic
	BatchSize int
	// Workers > 1 calls Model.ComputeBatch from several goroutines at
	// once, so the model must then be safe for concurrent use.
	Workers int
}

// Groups orders configurations by size, keeping input order among equal
// sizes, and cuts the order into groups of at most BatchSize indices.
func (b *Batch) Groups(confs []transition.Configuration) [][]int {
	order := make([]int, len(confs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return confs[order[i]].Size() < confs[order[j]].Size()
	})
	size := b.BatchSize
	if size < 1 {
		size = 1
	}
	groups := make([][]int, 0, (len(order)+size-1)/size)
	for start := 0; start < len(order); start += size {
		end := start + size
		if end > len(order) {
			end = len(order)
		}
		groups = append(groups, order[start:end])
	}
	return groups
}

// ParseAll decodes every configuration in place. Failed configurations
// are left where they stopped and reported as *ParseError values joined
// into the returned error, ordered by index.
func (b *Batch) ParseAll(confs []transition.Configuration) error {
	if b.TransFunc == nil || b.Model == nil || b.FeatExtractor == nil {
		return ErrNoSystem
	}
	var (
		mu     sync.Mutex
		failed []*ParseError
	)
	report := func(errs []*ParseError) {
		mu.Lock()
		failed = append(failed, errs...)
		mu.Unlock()
	}
	groups := b.Groups(confs)
	if b.Workers <= 1 || len(groups) <= 1 {
		for _, group := range groups {
			report(b.parseGroup(confs, group))
		}
	} else {
		pool, err := ants.NewPool(b.Workers)
		if err != nil {
			return err
		}
		defer pool.Release()
		var wg sync.WaitGroup
		for _, group := range groups {
			group := group
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				report(b.parseGroup(confs, group))
			}); err != nil {
				wg.Done()
				errs := make([]*ParseError, len(group))
				for i, index := range group {
					errs[i] = &ParseError{index, err}
				}
				report(errs)
			}
		}
		wg.Wait()
	}
	if len(failed) == 0 {
		return nil
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].Index < failed[j].Index })
	errs := make([]error, len(failed))
	for i, e := range failed {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (b *Batch) parseGroup(confs []transition.Configuration, group []int) []*ParseError {
	var failed []*ParseError
	alive := append([]int(nil), group...)
	for {
		active := alive[:0]
		for _, index := range alive {
			c := confs[index]
			if c.Terminal() {
				continue
			}
			if c.Step() >= b.stepBound(c) {
				failed = append(failed, &ParseError{index, fmt.Errorf("%w: %d steps at %v", ErrStepBound, c.Step(), c)})
				continue
			}
			active = append(active, index)
		}
		alive = active
		if len(alive) == 0 {
			return failed
		}
		features := make([]*featurevector.Vector, len(alive))
		for i, index := range alive {
			features[i] = b.FeatExtractor.Features(confs[index])
		}
		scores, err := b.Model.ComputeBatch(features)
		if err == nil && len(scores) != len(features) {
			err = fmt.Errorf("%w: %d score vectors for %d inputs", TransitionModel.ErrDimension, len(scores), len(features))
		}
		if err != nil {
			for _, index := range alive {
				failed = append(failed, &ParseError{index, err})
			}
			return failed
		}
		// every score vector is back before any configuration advances
		next := alive[:0]
		for i, index := range alive {
			if b.ShowConsiderations {
				log.Println("Batch member", index)
			}
			if err := b.apply(confs[index], scores[i]); err != nil {
				failed = append(failed, &ParseError{index, err})
				continue
			}
			next = append(next, index)
		}
		alive = next
	}
}
