package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled(t *testing.T) {
	c, err := New[int](0, 4)
	require.NoError(t, err)
	assert.Nil(t, c)

	c.Add("a", []int{1})
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestReturnsCopies(t *testing.T) {
	c, err := New[int](10, 2)
	require.NoError(t, err)

	in := []int{1, 2}
	c.Add("a", in)
	in[0] = 100

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got)

	got[1] = 200
	again, _ := c.Get("a")
	assert.Equal(t, []int{1, 2}, again)
}

func TestBounded(t *testing.T) {
	c, err := New[int](8, 4)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		c.Add(fmt.Sprint(i), []int{i})
	}
	assert.LessOrEqual(t, c.Len(), 8)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestConcurrent(t *testing.T) {
	c, err := New[string](64, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprint(i % 50)
				c.Add(key, []string{key})
				if v, ok := c.Get(key); ok {
					assert.Equal(t, []string{key}, v)
				}
			}
		}(g)
	}
	wg.Wait()
}
