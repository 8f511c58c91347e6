package imagecache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fallback(id int64) string { return fmt.Sprintf("https://cdn.test/%d.jpg", id) }

func TestResolvePrefersCandidateAndCachesIt(t *testing.T) {
	c := New()
	got := c.Resolve(context.Background(), 1, "https://x.test/1.png", nil, fallback)
	assert.Equal(t, "https://x.test/1.png", got)

	url, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "https://x.test/1.png", url)
}

func TestResolveUsesCacheBeforeFetch(t *testing.T) {
	c := New()
	c.Set(2, "https://cached.test/2.jpg")

	fetched := false
	got := c.Resolve(context.Background(), 2, "", func(ctx context.Context, id int64) (string, error) {
		fetched = true
		return "https://fetched.test/2.jpg", nil
	}, fallback)

	assert.Equal(t, "https://cached.test/2.jpg", got)
	assert.False(t, fetched)
}

func TestResolveFetchesThenFallsBack(t *testing.T) {
	c := New()
	got := c.Resolve(context.Background(), 3, "", func(ctx context.Context, id int64) (string, error) {
		return "https://fetched.test/3.jpg", nil
	}, fallback)
	assert.Equal(t, "https://fetched.test/3.jpg", got)
	assert.Equal(t, 1, c.Len())

	got = c.Resolve(context.Background(), 4, "", func(ctx context.Context, id int64) (string, error) {
		return "", errors.New("provider down")
	}, fallback)
	assert.Equal(t, "https://cdn.test/4.jpg", got)
	_, ok := c.Get(4)
	assert.False(t, ok, "fallback URLs are not cached")

	assert.Equal(t, "", c.Resolve(context.Background(), 5, "", nil, nil))
}

func TestSetIgnoresEmpty(t *testing.T) {
	c := New()
	c.Set(1, "  ")
	assert.Zero(t, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c.Set(id%5, fallback(id%5))
			c.Resolve(context.Background(), id%7, "", nil, fallback)
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}
