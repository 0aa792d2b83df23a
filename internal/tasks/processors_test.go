package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/drafts"
	"github.com/mrlokans/libraryhub/internal/storage"
)

type prunerFunc func(time.Duration) (int, error)

func (f prunerFunc) DeleteOldEntries(retention time.Duration) (int, error) { return f(retention) }

type stubEnricher struct {
	single  []string
	pending int
	err     error
}

func (s *stubEnricher) EnrichDraft(_ context.Context, id string) (domain.BookDraft, error) {
	s.single = append(s.single, id)
	return domain.BookDraft{ID: id, Status: domain.DraftStatusPending}, s.err
}

func (s *stubEnricher) EnrichPending(context.Context) (int, int, error) {
	s.pending++
	return 1, 0, s.err
}

type stubCatalog struct{}

func (stubCatalog) Create(_ context.Context, b domain.Book) (domain.Book, error) {
	b.ID = 1
	return b, nil
}

func TestEnrichDraftProcessor(t *testing.T) {
	t.Run("single draft", func(t *testing.T) {
		e := &stubEnricher{}
		require.NoError(t, EnrichDraftProcessor(e)(context.Background(), EnrichDraftTask{DraftID: "d1"}))
		assert.Equal(t, []string{"d1"}, e.single)
		assert.Zero(t, e.pending)
	})

	t.Run("all pending drafts", func(t *testing.T) {
		e := &stubEnricher{}
		require.NoError(t, EnrichDraftProcessor(e)(context.Background(), EnrichDraftTask{}))
		assert.Equal(t, 1, e.pending)
	})

	t.Run("propagates errors", func(t *testing.T) {
		e := &stubEnricher{err: errors.New("boom")}
		assert.Error(t, EnrichDraftProcessor(e)(context.Background(), EnrichDraftTask{DraftID: "d1"}))
	})

	t.Run("not configured", func(t *testing.T) {
		assert.Error(t, EnrichDraftProcessor(nil)(context.Background(), EnrichDraftTask{}))
	})
}

func TestCatalogDraftsProcessor(t *testing.T) {
	store := drafts.NewStore(storage.NewMemoryBackend(), "")
	created := store.AddBatch([]string{"9780134685991"})
	confirmed, title := domain.DraftStatusConfirmed, "Effective Java"
	store.UpdateOne(created[0].ID, domain.DraftPatch{Status: &confirmed, Title: &title})

	log := activity.NewLog(storage.NewMemoryBackend(), "", activity.Options{})

	err := CatalogDraftsProcessor(store, stubCatalog{}, log)(context.Background(), CatalogDraftsTask{UserID: 3})
	require.NoError(t, err)

	d, _ := store.Get(created[0].ID)
	assert.Equal(t, domain.DraftStatusCataloged, d.Status)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, uint(3), log.Entries()[0].UserID)
}

func TestPruneActivityProcessor(t *testing.T) {
	var got time.Duration
	pruner := prunerFunc(func(r time.Duration) (int, error) {
		got = r
		return 2, nil
	})

	require.NoError(t, PruneActivityProcessor(pruner, 30)(context.Background(), PruneActivityTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, got)

	require.NoError(t, PruneActivityProcessor(pruner, 0)(context.Background(), PruneActivityTask{}))
	assert.Equal(t, 90*24*time.Hour, got)

	failing := prunerFunc(func(time.Duration) (int, error) { return 0, errors.New("boom") })
	assert.Error(t, PruneActivityProcessor(failing, 30)(context.Background(), PruneActivityTask{}))
}
