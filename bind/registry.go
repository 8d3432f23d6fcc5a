package bind

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/fixfmt/format"
)

// registryShards is the number of independently locked shards. Descriptors are
// spread by their xxHash64 ID so lookups of unrelated formats rarely share a lock.
const registryShards = 16

// Registry caches synthesized Kinds by descriptor.
//
// A Registry starts empty, grows monotonically and never evicts. Cached
// lookups take a shard read lock only. Misses are collapsed with a
// singleflight group, so at most one synthesis per descriptor is in flight
// no matter how many goroutines ask for it. Failed syntheses are not cached.
//
// A Registry is safe for concurrent use.
type Registry struct {
	shards      [registryShards]registryShard
	group       singleflight.Group
	logger      *slog.Logger
	synthesized atomic.Int64
}

type registryShard struct {
	mu    sync.RWMutex
	kinds map[format.Descriptor]*Kind
}

// NewRegistry creates an empty registry. A nil logger discards log output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Registry{logger: logger}
	for i := range r.shards {
		r.shards[i].kinds = make(map[format.Descriptor]*Kind)
	}

	return r
}

func (r *Registry) shard(d format.Descriptor) *registryShard {
	return &r.shards[d.ID()%registryShards]
}

// Lookup returns the cached Kind of d without synthesizing it.
func (r *Registry) Lookup(d format.Descriptor) (*Kind, bool) {
	s := r.shard(d)
	s.mu.RLock()
	k, ok := s.kinds[d]
	s.mu.RUnlock()

	return k, ok
}

// Kind returns the Kind of d, synthesizing and caching it on first use.
//
// Returns errs.ErrSynthesisFailure when d is malformed or too wide.
func (r *Registry) Kind(d format.Descriptor) (*Kind, error) {
	if k, ok := r.Lookup(d); ok {
		return k, nil
	}

	v, err, _ := r.group.Do(d.Key(), func() (any, error) {
		// Another caller may have finished synthesis between Lookup and Do.
		if k, ok := r.Lookup(d); ok {
			return k, nil
		}

		start := time.Now()
		k, err := synthesize(d)
		if err != nil {
			r.logger.Debug("format synthesis failed", "format", d.String(), "error", err)
			return nil, err
		}

		s := r.shard(d)
		s.mu.Lock()
		s.kinds[d] = k
		s.mu.Unlock()

		r.synthesized.Add(1)
		r.logger.Debug("format synthesized",
			"format", d.String(),
			"word", k.word.String(),
			"duration", time.Since(start))

		return k, nil
	})
	if err != nil {
		return nil, err
	}

	k, _ := v.(*Kind)

	return k, nil
}

// Preload synthesizes descs concurrently and returns the first error.
// Formats that synthesized before a failure stay cached.
func (r *Registry) Preload(ctx context.Context, descs ...format.Descriptor) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range descs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Kind(d)

			return err
		})
	}

	return g.Wait()
}

// Len returns the number of cached formats.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.kinds)
		s.mu.RUnlock()
	}

	return n
}

// Synthesized returns the number of successful syntheses. Each cached format
// is synthesized exactly once, so it matches Len.
func (r *Registry) Synthesized() int64 {
	return r.synthesized.Load()
}

// Descriptors returns the cached formats ordered by key.
func (r *Registry) Descriptors() []format.Descriptor {
	descs := make([]format.Descriptor, 0, r.Len())
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		for d := range s.kinds {
			descs = append(descs, d)
		}
		s.mu.RUnlock()
	}

	slices.SortFunc(descs, func(a, b format.Descriptor) int {
		return strings.Compare(a.Key(), b.Key())
	})

	return descs
}
