package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	Name string `json:"name"`
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "k", []item{{Name: "a"}}, time.Minute))

	var out []item
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []item{{Name: "a"}}, out)

	hit, err = c.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", item{Name: "a"}, time.Second))

	now = now.Add(2 * time.Second)
	var out item
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ExpiredGetKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "k", item{Name: "old"}, time.Second))
	now = now.Add(2 * time.Second)

	// Get sees the stale entry, then a writer refreshes the key before the
	// expired entry is removed.
	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			require.NoError(t, c.Set(ctx, "k", item{Name: "new"}, time.Minute))
		}
		return now
	}

	var out item
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit, "the refreshed value survives")
	assert.Equal(t, "new", out.Name)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(ctx, EventsKey(1, 3, fmt.Sprintf("search %d", i), 0, 0), i, time.Millisecond))
	}
	require.NoError(t, c.Set(ctx, KeyCategories, 1, time.Hour))

	now = now.Add(20 * time.Millisecond)
	assert.Equal(t, 100, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestMemory_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewMemory()
	require.NoError(t, c.Set(ctx, "k", 1, time.Millisecond))

	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestMemory_MaxEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryWithLimit(3)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Second))
	require.NoError(t, c.Set(ctx, "c", 3, time.Hour))

	t.Run("full cache evicts the entry closest to expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "d", 4, time.Hour))
		assert.Equal(t, 3, c.Len())

		var out int
		hit, _ := c.Get(ctx, "b", &out)
		assert.False(t, hit)
		hit, _ = c.Get(ctx, "a", &out)
		assert.True(t, hit)
	})

	t.Run("expired entries are dropped before live ones", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		require.NoError(t, c.Set(ctx, "e", 5, time.Hour))
		assert.Equal(t, 3, c.Len())

		var out int
		hit, _ := c.Get(ctx, "c", &out)
		assert.True(t, hit)
		hit, _ = c.Get(ctx, "d", &out)
		assert.True(t, hit)
	})

	t.Run("overwriting a key does not evict", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "c", 30, time.Hour))
		assert.Equal(t, 3, c.Len())
	})
}

func TestMemory_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, EventsKey(1, 3, "", 0, 0), 1, time.Minute))
	require.NoError(t, c.Set(ctx, EventsKey(2, 3, "jazz", 1, 0), 2, time.Minute))
	require.NoError(t, c.Set(ctx, KeyCategories, 3, time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, PrefixEvents))

	var out int
	hit, _ := c.Get(ctx, EventsKey(1, 3, "", 0, 0), &out)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, KeyCategories, &out)
	assert.True(t, hit)
	assert.Equal(t, 3, out)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "events:2:3:jazz:4:5", EventsKey(2, 3, "  Jazz ", 4, 5))
	assert.Equal(t, "promotions:organizer:7", OrganizerPromotionsKey(7))
	assert.Equal(t, "reviews:organizer:7:6", OrganizerReviewsKey(7, 6))
	assert.Equal(t, "drafts:abc:e1", DraftKey("abc", "e1"))
	assert.Equal(t, "drafts:abc:", DraftsPrefix("abc"))
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	require.NoError(t, c.Set(ctx, DraftKey("abc", "e1"), 1, time.Minute))
	require.NoError(t, c.Set(ctx, DraftKey("abc", "e10"), 2, time.Minute))

	require.NoError(t, c.Delete(ctx, DraftKey("abc", "e1")))

	var out int
	hit, _ := c.Get(ctx, DraftKey("abc", "e1"), &out)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, DraftKey("abc", "e10"), &out)
	assert.True(t, hit, "only the exact key is removed")
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	log := zap.NewNop()
	calls := 0

	load := func(context.Context) ([]item, error) {
		calls++
		return []item{{Name: "fresh"}}, nil
	}

	out, err := GetOrLoad(ctx, c, log, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", out[0].Name)

	out, err = GetOrLoad(ctx, c, log, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", out[0].Name)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	boom := errors.New("boom")

	_, err := GetOrLoad(ctx, c, zap.NewNop(), "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestGetOrLoad_NilCache(t *testing.T) {
	out, err := GetOrLoad(context.Background(), nil, zap.NewNop(), "k", time.Minute, func(context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", out)
}

func TestNewRedisFromURL_InvalidURL(t *testing.T) {
	_, err := NewRedisFromURL(context.Background(), "not-a-url://", "storefront")
	assert.Error(t, err)
}

func TestRedis_KeyNamespace(t *testing.T) {
	r := NewRedis(nil, "storefront")
	assert.Equal(t, "storefront:categories", r.key(KeyCategories))

	r = NewRedis(nil, "")
	assert.Equal(t, "categories", r.key(KeyCategories))
}
