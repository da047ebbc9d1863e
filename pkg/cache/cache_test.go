package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPermanent = errors.New("permanent")

func init() {
	connectBackoff.Initial = time.Millisecond
}

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("alice")), Hash([]byte("alice")))
	assert.NotEqual(t, Hash([]byte("alice")), Hash([]byte("bob")))
	// SHA-256 of the empty string
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
}

func TestHashJSON(t *testing.T) {
	type spacing struct{ Gap, Margin int }

	a, err := HashJSON(spacing{30, 20})
	require.NoError(t, err)
	b, err := HashJSON(spacing{30, 21})
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	_, err = HashJSON(make(chan int))
	assert.Error(t, err)
}

func TestStageKey(t *testing.T) {
	k := stageKey("layout", "abc", 1)
	assert.Regexp(t, `^layout:[0-9a-f]{64}$`, k)
	assert.Equal(t, k, stageKey("layout", "abc", 1))
	assert.NotEqual(t, k, stageKey("artifact", "abc", 1))
	assert.NotEqual(t, k, stageKey("layout", "abc", 2))
	// unencodable parts still yield a stable key
	assert.Regexp(t, `^layout:[0-9a-f]{64}$`, stageKey("layout", make(chan int)))
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Engine: "1", ConfigHash: "a"}

	assert.Regexp(t, `^layout:`, k.LayoutKey("src", base))
	assert.Equal(t, k.LayoutKey("src", base), k.LayoutKey("src", base))
	assert.NotEqual(t, k.LayoutKey("src", base), k.LayoutKey("src", LayoutKeyOpts{Engine: "1", ConfigHash: "b"}))
	assert.NotEqual(t, k.LayoutKey("src", base), k.LayoutKey("other", base))

	svg := k.ArtifactKey("src", ArtifactKeyOpts{Format: "svg"})
	assert.Regexp(t, `^artifact:`, svg)
	for _, opts := range []ArtifactKeyOpts{
		{Format: "png"},
		{Format: "svg", IDPrefix: "login"},
	} {
		assert.NotEqual(t, svg, k.ArtifactKey("src", opts), "%+v", opts)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "team:docs:")

	assert.Equal(t, "team:docs:"+inner.LayoutKey("abc", LayoutKeyOpts{}), scoped.LayoutKey("abc", LayoutKeyOpts{}))
	assert.Regexp(t, `^team:docs:artifact:`, scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}))

	fallback := NewScopedKeyer(nil, "p:")
	assert.Equal(t, "p:"+inner.LayoutKey("x", LayoutKeyOpts{}), fallback.LayoutKey("x", LayoutKeyOpts{}))
}

func TestKeyerFor(t *testing.T) {
	opts := LayoutKeyOpts{Engine: "e"}
	plain := NewDefaultKeyer().LayoutKey("x", opts)

	tests := []struct {
		backend string
		want    string
	}{
		{BackendMongo, "p:" + plain},
		{BackendRedis, plain}, // redis prefixes inside the backend
		{BackendFile, plain},
	}
	for _, tt := range tests {
		got := KeyerFor(Config{Backend: tt.backend, Prefix: "p:"}).LayoutKey("x", opts)
		assert.Equal(t, tt.want, got, tt.backend)
	}
}

func TestRetryable(t *testing.T) {
	assert.NoError(t, Retryable(nil))

	err := Retryable(ErrNetwork)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, ErrNetwork.Error(), err.Error())

	assert.False(t, IsRetryable(errPermanent))
	assert.True(t, IsRetryable(errors.Join(errPermanent, Retryable(ErrNetwork))))
}

func TestBackoffRetry(t *testing.T) {
	b := Backoff{Attempts: 3, Initial: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantErr   error
		wantCalls int
	}{
		{"first try", 0, nil, nil, 1},
		{"permanent", 5, errPermanent, errPermanent, 1},
		{"recovers", 2, Retryable(ErrNetwork), nil, 3},
		{"exhausted", 5, Retryable(ErrNetwork), ErrNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Retry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryWithBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
