package search

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/philocalyst/emoji-search/core"
)

// minChunk is the smallest number of entries scored by one pool task.
const minChunk = 64

type hit[A any] struct {
	entity core.EntityID
	attrs  A
}

// rank scores every entry on the pool, then sorts the hits with r. score
// reports false for an entry that does not match at all. Each task
// writes only its own slots, so nothing on the scoring path is locked.
// Fully tied entities keep dataset order.
func rank[A any](ctx context.Context, pool *ants.Pool, entries []entry, score func(*entry) (A, bool), r ranking[A]) ([]core.EntityID, error) {
	slots := make([]hit[A], len(entries))
	matched := make([]bool, len(entries))

	workers := max(pool.Cap(), 1)
	chunk := max(minChunk, (len(entries)+workers-1)/workers)

	var wg sync.WaitGroup
	var submitErr error
	for lo := 0; lo < len(entries); lo += chunk {
		hi := min(lo+chunk, len(entries))
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				if attrs, ok := score(&entries[i]); ok {
					slots[i] = hit[A]{entity: entries[i].entity, attrs: attrs}
					matched[i] = true
				}
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		if errors.Is(submitErr, ants.ErrPoolClosed) {
			return nil, ErrSearcherClosed
		}
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits := make([]hit[A], 0, len(entries))
	for i := range slots {
		if matched[i] {
			hits = append(hits, slots[i])
		}
	}
	slices.SortStableFunc(hits, func(a, b hit[A]) int {
		return r.compare(&a.attrs, &b.attrs)
	})

	results := make([]core.EntityID, len(hits))
	for i := range hits {
		results[i] = hits[i].entity
	}
	return results, nil
}
