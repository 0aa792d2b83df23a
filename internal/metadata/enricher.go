package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/libraryhub/internal/domain"
)

// Provider looks editions up by ISBN.
type Provider interface {
	SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
}

// DraftUpdater is the part of the drafts container the enricher needs.
type DraftUpdater interface {
	Get(id string) (domain.BookDraft, bool)
	UpdateOne(id string, patch domain.DraftPatch) bool
	ByStatus(status domain.DraftStatus) []domain.BookDraft
}

// ErrDraftNotFound is returned for draft ids the container does not hold.
var ErrDraftNotFound = errors.New("draft not found")

// Enricher fills intake drafts from edition metadata.
type Enricher struct {
	provider Provider
	drafts   DraftUpdater
}

func NewEnricher(provider Provider, drafts DraftUpdater) *Enricher {
	return &Enricher{provider: provider, drafts: drafts}
}

// EnrichDraft looks the draft's ISBN up and copies what it finds into fields the draft does not
// have yet. A failed lookup marks the draft failed with the error; that is not an error return.
func (e *Enricher) EnrichDraft(ctx context.Context, id string) (domain.BookDraft, error) {
	draft, ok := e.drafts.Get(id)
	if !ok {
		return domain.BookDraft{}, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	if draft.ISBN == "" {
		return e.fail(id, "no ISBN to look up"), nil
	}

	md, err := e.provider.SearchByISBN(ctx, draft.ISBN)
	if err != nil {
		if ctx.Err() != nil {
			return draft, ctx.Err()
		}
		log.Printf("WARNING: metadata lookup for draft %s failed: %v", id, err)
		return e.fail(id, err.Error()), nil
	}

	e.drafts.UpdateOne(id, patchFromMetadata(draft, md))
	updated, _ := e.drafts.Get(id)
	return updated, nil
}

// EnrichPending runs EnrichDraft over every pending draft and reports how many were filled in
// and how many failed.
func (e *Enricher) EnrichPending(ctx context.Context) (enriched, failed int, err error) {
	for _, d := range e.drafts.ByStatus(domain.DraftStatusPending) {
		updated, err := e.EnrichDraft(ctx, d.ID)
		if err != nil {
			return enriched, failed, err
		}
		if updated.Status == domain.DraftStatusFailed {
			failed++
		} else {
			enriched++
		}
	}
	return enriched, failed, nil
}

func (e *Enricher) fail(id, reason string) domain.BookDraft {
	status := domain.DraftStatusFailed
	e.drafts.UpdateOne(id, domain.DraftPatch{Status: &status, Error: &reason})
	d, _ := e.drafts.Get(id)
	return d
}

func patchFromMetadata(d domain.BookDraft, md *BookMetadata) domain.DraftPatch {
	var p domain.DraftPatch
	fill := func(dst **string, current, found string) {
		if current == "" && found != "" {
			v := found
			*dst = &v
		}
	}
	fill(&p.Title, d.Title, md.Title)
	fill(&p.Author, d.Author, md.Author)
	fill(&p.Publisher, d.Publisher, md.Publisher)
	fill(&p.CoverURL, d.CoverURL, md.CoverURL)
	if d.Year == 0 && md.PublicationYear != 0 {
		y := md.PublicationYear
		p.Year = &y
	}
	empty := ""
	p.Error = &empty
	return p
}
