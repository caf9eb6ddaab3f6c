package resultcache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	c := New[[]string](0)
	v, ok := c.Get("nope")
	require.False(t, ok)
	require.Nil(t, v)
}

func TestSetGet(t *testing.T) {
	c := New[[]string](0)
	c.Set("k", []string{"a", "b"}, time.Minute)

	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, v)
}

func TestExpiresAfterTTL(t *testing.T) {
	c := New[int](0)
	c.Set("k", 1, 30*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestSetOverwritesValueAndTTL(t *testing.T) {
	c := New[int](0)
	c.Set("k", 1, 30*time.Millisecond)
	c.Set("k", 2, time.Minute)

	time.Sleep(60 * time.Millisecond)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New[string](0)
	c.Set("k", "v", 0)
	time.Sleep(10 * time.Millisecond)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestDelete(t *testing.T) {
	c := New[string](0)
	c.Set("k", "v", time.Minute)
	require.Equal(t, 1, c.Len())
	c.Delete("k")
	_, ok := c.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Millisecond)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 5)
			c.Set(key, i, time.Minute)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 5, c.Len())
}
