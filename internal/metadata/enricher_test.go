package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/storage"
)

type fakeProvider struct {
	results map[string]*BookMetadata
	calls   int
}

func (f *fakeProvider) SearchByISBN(_ context.Context, isbn string) (*BookMetadata, error) {
	f.calls++
	if md, ok := f.results[isbn]; ok {
		return md, nil
	}
	return nil, ErrISBNNotFound
}

func TestEnrichDraft(t *testing.T) {
	provider := &fakeProvider{results: map[string]*BookMetadata{
		"9780134685991": {Title: "Effective Java", Author: "Joshua Bloch", Publisher: "Addison-Wesley", PublicationYear: 2017, CoverURL: "http://cover"},
	}}
	store := drafts.NewStore(storage.NewMemoryBackend(), "")
	enricher := NewEnricher(provider, store)

	created := store.AddBatch([]string{"9780134685991", "9780000000002", "SHELF-001"})
	require.Len(t, created, 3)

	t.Run("fills empty fields from metadata", func(t *testing.T) {
		d, err := enricher.EnrichDraft(context.Background(), created[0].ID)
		require.NoError(t, err)

		assert.Equal(t, "Effective Java", d.Title)
		assert.Equal(t, "Joshua Bloch", d.Author)
		assert.Equal(t, "Addison-Wesley", d.Publisher)
		assert.Equal(t, 2017, d.Year)
		assert.Equal(t, domain.DraftStatusPending, d.Status)
		assert.Empty(t, d.Error)
	})

	t.Run("keeps fields the user already entered", func(t *testing.T) {
		title := "My Title"
		store.UpdateOne(created[0].ID, domain.DraftPatch{Title: &title})

		d, err := enricher.EnrichDraft(context.Background(), created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "My Title", d.Title)
	})

	t.Run("marks draft failed when lookup fails", func(t *testing.T) {
		d, err := enricher.EnrichDraft(context.Background(), created[1].ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DraftStatusFailed, d.Status)
		assert.Contains(t, d.Error, "isbn not found")
	})

	t.Run("marks draft failed without isbn", func(t *testing.T) {
		d, err := enricher.EnrichDraft(context.Background(), created[2].ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DraftStatusFailed, d.Status)
		assert.NotEmpty(t, d.Error)
	})

	t.Run("unknown draft", func(t *testing.T) {
		_, err := enricher.EnrichDraft(context.Background(), "missing")
		assert.True(t, errors.Is(err, ErrDraftNotFound))
	})
}

func TestEnrichPending(t *testing.T) {
	provider := &fakeProvider{results: map[string]*BookMetadata{
		"9780134685991": {Title: "Effective Java"},
	}}
	store := drafts.NewStore(storage.NewMemoryBackend(), "")
	store.AddBatch([]string{"9780134685991", "9780000000002"})

	enriched, failed, err := NewEnricher(provider, store).EnrichPending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, enriched)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, provider.calls)
	assert.Len(t, store.ByStatus(domain.DraftStatusFailed), 1)
}
