package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeIsIdempotent(t *testing.T) {
	c := New(t.TempDir())

	calls := 0
	compute := func() (string, error) {
		calls++
		return "translated", nil
	}

	first, err := c.GetOrCompute("النص", "translate", "en", compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute("النص", "translate", "en", compute)
	require.NoError(t, err)

	assert.Equal(t, "translated", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second request must not hit upstream")
}

func TestEntriesSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	c := New(dir)
	require.NoError(t, c.Put("text", "reflect", "en", "a reflection"))

	reopened := New(dir)
	result, ok := reopened.Get("text", "reflect", "en")
	require.True(t, ok)
	assert.Equal(t, "a reflection", result)
}

func TestKeysDoNotCollideAcrossOpOrLang(t *testing.T) {
	c := New(t.TempDir())
	require.NoError(t, c.Put("text", "translate", "en", "english"))
	require.NoError(t, c.Put("text", "translate", "fr", "french"))
	require.NoError(t, c.Put("text", "reflect", "en", "reflection"))

	en, _ := c.Get("text", "translate", "en")
	fr, _ := c.Get("text", "translate", "fr")
	re, _ := c.Get("text", "reflect", "en")
	assert.Equal(t, "english", en)
	assert.Equal(t, "french", fr)
	assert.Equal(t, "reflection", re)
}

func TestComputeErrorIsNotCached(t *testing.T) {
	c := New(t.TempDir())

	_, err := c.GetOrCompute("text", "translate", "en", func() (string, error) {
		return "", errors.New("upstream down")
	})
	require.Error(t, err)

	result, err := c.GetOrCompute("text", "translate", "en", func() (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", result)
}

func TestConcurrentIdenticalRequestsComputeOnce(t *testing.T) {
	c := New(t.TempDir())

	var calls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := c.GetOrCompute("text", "translate", "en", func() (string, error) {
				calls.Add(1)
				return "once", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "once", result)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRejectsPathEscapingKeyComponents(t *testing.T) {
	root := t.TempDir()
	c := New(filepath.Join(root, "cache"))

	// a lang full of ../ segments must never write outside the cache dir
	err := c.Put("text", "reflect", "../../../../escaped", "payload")
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(root, "escaped.json"))
	assert.True(t, os.IsNotExist(statErr))

	_, ok := c.Get("text", "reflect", "../../../../escaped")
	assert.False(t, ok)

	_, err = c.GetOrCompute("text", "../op", "en", func() (string, error) {
		t.Error("must not compute for an invalid key")
		return "x", nil
	})
	assert.Error(t, err)

	err = c.Put("text", "reflect", "en/../..", "payload")
	assert.Error(t, err)
}

func TestDisabledCachePassesThrough(t *testing.T) {
	c := New("")

	calls := 0
	for i := 0; i < 2; i++ {
		result, err := c.GetOrCompute("text", "translate", "en", func() (string, error) {
			calls++
			return "fresh", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", result)
	}
	assert.Equal(t, 2, calls)
}
