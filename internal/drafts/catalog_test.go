package drafts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/storage"
)

type fakeCatalog struct {
	created []domain.Book
}

func (f *fakeCatalog) Create(_ context.Context, book domain.Book) (domain.Book, error) {
	if book.Title == "" {
		return domain.Book{}, errors.New("title is required")
	}
	book.ID = uint(len(f.created) + 1)
	f.created = append(f.created, book)
	return book, nil
}

type recorded struct {
	entries []domain.NewActivity
}

func (r *recorded) Append(a domain.NewActivity) domain.ActivityEntry {
	r.entries = append(r.entries, a)
	return domain.ActivityEntry{}
}

func TestCatalog(t *testing.T) {
	store := NewStore(storage.NewMemoryBackend(), "")
	created := store.AddBatch([]string{"9780134685991", "9780000000002", "SHELF-1"})

	confirmed := domain.DraftStatusConfirmed
	title := "Effective Java"
	store.UpdateOne(created[0].ID, domain.DraftPatch{Status: &confirmed, Title: &title})
	store.UpdateOne(created[1].ID, domain.DraftPatch{Status: &confirmed})

	catalog := &fakeCatalog{}
	rec := &recorded{}

	result, err := store.Catalog(context.Background(), catalog, rec, 7)
	require.NoError(t, err)

	require.Len(t, result.Cataloged, 1)
	assert.Equal(t, "Effective Java", result.Cataloged[0].Title)
	assert.Equal(t, 1, result.Cataloged[0].Quantity)
	assert.Equal(t, 1, result.Failed)

	first, _ := store.Get(created[0].ID)
	assert.Equal(t, domain.DraftStatusCataloged, first.Status)

	second, _ := store.Get(created[1].ID)
	assert.Equal(t, domain.DraftStatusFailed, second.Status)
	assert.Equal(t, "title is required", second.Error)

	third, _ := store.Get(created[2].ID)
	assert.Equal(t, domain.DraftStatusPending, third.Status)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, uint(7), rec.entries[0].UserID)
	assert.Equal(t, domain.ActivityBookCataloged, rec.entries[0].Type)
}

func TestCatalog_CancelledContext(t *testing.T) {
	store := NewStore(storage.NewMemoryBackend(), "")
	created := store.AddBatch([]string{"9780134685991"})
	confirmed := domain.DraftStatusConfirmed
	store.UpdateOne(created[0].ID, domain.DraftPatch{Status: &confirmed})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Catalog(ctx, &fakeCatalog{}, nil, 1)
	assert.ErrorIs(t, err, context.Canceled)

	d, _ := store.Get(created[0].ID)
	assert.Equal(t, domain.DraftStatusConfirmed, d.Status)
}
