package prefroom_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/prefroom"
)

func TestContext_Stores(t *testing.T) {
	ctx := prefroom.NewContext()
	a := ctx.Store("a")
	require.NotNil(t, a)
	assert.Same(t, a, ctx.Store("a"), "namespaces are cached")
	assert.NotSame(t, a, ctx.Store("b"))
	assert.Same(t, ctx.DefaultStore(), ctx.DefaultStore())
	assert.NotSame(t, a, ctx.DefaultStore())
}

func TestContext_StoreFactory(t *testing.T) {
	var names []string
	ctx := prefroom.NewContext(prefroom.WithStoreFactory(func(name string) prefroom.Store {
		names = append(names, name)
		return prefroom.NewMemoryStore()
	}))
	ctx.Store("UserPrefs")
	ctx.Store("UserPrefs")
	ctx.DefaultStore()
	assert.Equal(t, []string{"UserPrefs", ""}, names)
}

func TestRegistry(t *testing.T) {
	r := prefroom.NewRegistry()
	ctx := prefroom.NewContext(prefroom.WithRegistry(r))
	assert.Same(t, r, ctx.Registry())

	_, ok := r.Load("k")
	assert.False(t, ok)

	first := &struct{ n int }{1}
	second := &struct{ n int }{2}
	assert.Same(t, first, r.LoadOrStore("k", first))
	assert.Same(t, first, r.LoadOrStore("k", second), "the first stored instance survives")
	v, ok := r.Load("k")
	require.True(t, ok)
	assert.Same(t, first, v)
	assert.Equal(t, 1, r.Len())

	r.Delete("k")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentFirstCall(t *testing.T) {
	r := prefroom.NewRegistry()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[any]struct{}{}
	)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := r.LoadOrStore("k", &struct{ n int }{i})
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 1, "every caller observes the surviving instance")
}
