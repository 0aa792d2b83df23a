package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *notify.Feed, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	feed := notify.NewFeed(0)
	return NewStore(backend, "", feed), feed, backend
}

func TestStore_Toggle(t *testing.T) {
	t.Run("adds then removes with a notification each time", func(t *testing.T) {
		store, feed, _ := newTestStore(t)

		assert.True(t, store.Toggle("42", "Book X"))
		assert.True(t, store.Contains("42"))
		require.Equal(t, 1, feed.Len())
		added := feed.Recent(1)[0]
		assert.Contains(t, added.Title, "Added")
		assert.Contains(t, added.Description, "Book X")

		assert.False(t, store.Toggle("42", "Book X"))
		assert.False(t, store.Contains("42"))
		require.Equal(t, 2, feed.Len())
		removed := feed.Recent(1)[0]
		assert.Contains(t, removed.Title, "Removed")
		assert.Contains(t, removed.Description, "Book X")
	})

	t.Run("parity of toggles decides membership", func(t *testing.T) {
		for n := 0; n < 7; n++ {
			store, _, _ := newTestStore(t)
			store.Add("other", "")
			for i := 0; i < n; i++ {
				store.Toggle("7", "")
			}
			assert.Equal(t, n%2 == 1, store.Contains("7"), "after %d toggles", n)
			assert.True(t, store.Contains("other"))
		}
	})

	t.Run("notification without label", func(t *testing.T) {
		store, feed, _ := newTestStore(t)
		store.Toggle("1", "")
		assert.NotEmpty(t, feed.Recent(1)[0].Description)
	})
}

func TestStore_AddRemove(t *testing.T) {
	t.Run("add is idempotent and silent on repeat", func(t *testing.T) {
		store, feed, _ := newTestStore(t)

		store.Add("1", "One")
		store.Add("1", "One")

		assert.Equal(t, []string{"1"}, store.Items())
		assert.Equal(t, 1, feed.Len())
	})

	t.Run("remove of missing id is silent", func(t *testing.T) {
		store, feed, _ := newTestStore(t)

		store.Remove("nope", "Nope")

		assert.Equal(t, 0, feed.Len())
		assert.Equal(t, 0, store.Count())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		store, _, _ := newTestStore(t)
		store.Add("3", "")
		store.Add("1", "")
		store.Add("2", "")
		store.Remove("1", "")

		assert.Equal(t, []string{"3", "2"}, store.Items())
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Run("survives a new store on the same backend", func(t *testing.T) {
		store, _, backend := newTestStore(t)
		store.Add("5", "")

		reopened := NewStore(backend, "", nil)
		assert.True(t, reopened.Contains("5"))
	})

}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "wishlist:guest", SlotKey("wishlist", 0))
	assert.Equal(t, "wishlist:12", SlotKey("wishlist", 12))
}
