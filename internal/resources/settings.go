package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/mapping"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
)

type Settings struct {
	store    SettingStore
	query    *query.Client
	notifier notify.Notifier
}

func NewSettings(store SettingStore, q *query.Client, n notify.Notifier) *Settings {
	if n == nil {
		n = notify.Discard
	}
	return &Settings{store: store, query: q, notifier: n}
}

// Get returns the system settings; anything not stored remotely has its default.
func (s *Settings) Get(ctx context.Context) (domain.SystemSettings, error) {
	return query.Get(ctx, s.query, query.KeyOf(ResourceSettings), s.fetch)
}

// BusinessRules returns the lending rules, or the defaults when settings cannot be loaded.
func (s *Settings) BusinessRules(ctx context.Context) domain.BusinessRules {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.DefaultBusinessRules()
	}
	return settings.BusinessRules
}

func (s *Settings) Subscribe(ctx context.Context, listener func(query.State)) *query.Subscription {
	return s.query.Subscribe(ctx, query.KeyOf(ResourceSettings), func(ctx context.Context) (any, error) {
		return s.fetch(ctx)
	}, listener)
}

// Update merges value into the document stored under key. Value may be the section struct or a
// map of its fields.
func (s *Settings) Update(ctx context.Context, key string, value any) (domain.SystemSettings, error) {
	return query.Mutate(ctx, s.query, s.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceSettings},
		SuccessTitle: "Settings saved",
		ErrorTitle:   "Could not save settings",
	}, func(ctx context.Context) (domain.SystemSettings, error) {
		current, err := s.fetch(ctx)
		if err != nil {
			return domain.SystemSettings{}, err
		}
		doc, err := mapping.EncodeSetting(key, value, current)
		if errors.Is(err, mapping.ErrUnknownSetting) {
			return domain.SystemSettings{}, invalid("unknown setting %q", key)
		}
		if err != nil {
			return domain.SystemSettings{}, invalid("%v", err)
		}
		if err := s.store.UpdateSetting(ctx, key, doc); err != nil {
			return domain.SystemSettings{}, fmt.Errorf("failed to save %s: %w", key, err)
		}
		return s.fetch(ctx)
	})
}

func (s *Settings) fetch(ctx context.Context) (domain.SystemSettings, error) {
	rows, err := s.store.GetSettings(ctx)
	if err != nil {
		return domain.SystemSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return mapping.SettingsFromRows(rows), nil
}
