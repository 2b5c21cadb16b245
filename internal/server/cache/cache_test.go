package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad(t *testing.T) {
	c := New(time.Minute, time.Minute)
	calls := 0
	load := func() (any, error) {
		calls++
		return "value", nil
	}

	v, err := c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, time.Minute)
	_, err := c.GetOrLoad("k", func() (any, error) { return nil, errors.New("boom") })
	require.Error(t, err)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestExpiryAndClear(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.Set("a", 1)
	assert.Equal(t, 1, c.ItemCount())

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 5*time.Millisecond)

	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
}
