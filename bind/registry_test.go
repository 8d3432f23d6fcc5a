package bind

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
)

func TestRegistry_SynthesizesOnce(t *testing.T) {
	r := NewRegistry(nil)
	desc := format.New(true, 5, 10)

	const workers = 64
	kinds := make([]*Kind, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			k, err := r.Kind(desc)
			require.NoError(t, err)
			kinds[i] = k
		}()
	}
	close(start)
	wg.Wait()

	for _, k := range kinds {
		require.Same(t, kinds[0], k)
	}
	require.Equal(t, int64(1), r.Synthesized())
	require.Equal(t, 1, r.Len())
}

func TestRegistry_ManyDescriptorsConcurrently(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup
	for i := range 8 {
		for f := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := r.Kind(format.New(i%2 == 0, i, f))
				require.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	require.Equal(t, 8*16, r.Len())
	require.Equal(t, int64(8*16), r.Synthesized())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(nil)
	desc := format.New(false, 2, 4)

	_, ok := r.Lookup(desc)
	require.False(t, ok)

	k, err := r.Kind(desc)
	require.NoError(t, err)
	require.Equal(t, desc, k.Descriptor())
	require.Equal(t, format.Word8, k.WordSize())

	cached, ok := r.Lookup(desc)
	require.True(t, ok)
	require.Same(t, k, cached)
}

func TestRegistry_FailuresNotCached(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Kind(format.New(false, 2, 4))
	require.NoError(t, err)

	_, err = r.Kind(format.New(true, 60, 10))
	require.ErrorIs(t, err, errs.ErrSynthesisFailure)
	_, err = r.Kind(format.New(true, 60, 10))
	require.ErrorIs(t, err, errs.ErrSynthesisFailure)

	require.Equal(t, 1, r.Len())
	_, ok := r.Lookup(format.New(false, 2, 4))
	require.True(t, ok)
}

func TestRegistry_Preload(t *testing.T) {
	r := NewRegistry(nil)
	descs := []format.Descriptor{
		format.New(true, 3, 2),
		format.New(false, 0, 8),
		format.New(false, 10, 0),
		format.New(true, 3, 2),
	}

	require.NoError(t, r.Preload(context.Background(), descs...))
	require.Equal(t, 3, r.Len())
	require.Equal(t, []format.Descriptor{
		format.New(true, 3, 2),
		format.New(false, 0, 8),
		format.New(false, 10, 0),
	}, r.Descriptors())

	err := r.Preload(context.Background(), format.New(true, 1, 1), format.New(true, -1, 1))
	require.ErrorIs(t, err, errs.ErrSynthesisFailure)
}

func TestRegistry_PreloadCanceled(t *testing.T) {
	r := NewRegistry(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Preload(ctx, format.New(true, 1, 1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b, err := NewBinder(WithLogger(logger))
	require.NoError(t, err)

	_, err = b.Bind(format.New(true, 2, 3), 1)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "format synthesized")
	require.Contains(t, buf.String(), "format=Q2.3")
	require.Contains(t, buf.String(), "word=Word8")

	_, err = b.Bind(format.New(true, 70, 3), 1)
	require.Error(t, err)
	require.Contains(t, buf.String(), "format synthesis failed")
}

func TestKind_RawRangeAndString(t *testing.T) {
	r := NewRegistry(nil)

	k, err := r.Kind(format.New(true, 2, 3))
	require.NoError(t, err)
	lo, hi := k.RawRange()
	require.Equal(t, int64(-32), lo)
	require.Equal(t, int64(32), hi)
	require.Equal(t, "Kind{Q2.3, Word8}", k.String())

	k, err = r.Kind(format.New(false, 2, 3))
	require.NoError(t, err)
	lo, hi = k.RawRange()
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(32), hi)
}

func BenchmarkRegistry_CachedKind(b *testing.B) {
	r := NewRegistry(nil)
	desc := format.New(true, 8, 8)
	_, _ = r.Kind(desc)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = r.Kind(desc)
		}
	})
}
