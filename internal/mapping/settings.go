package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// ErrUnknownSetting is returned when encoding a value for a key the application does not know.
var ErrUnknownSetting = errors.New("unknown setting")

// SettingsFromRows builds the settings view. Missing keys, missing fields and values that do
// not decode keep their defaults.
func SettingsFromRows(rows []entities.Setting) domain.SystemSettings {
	s := domain.DefaultSystemSettings()
	for _, row := range rows {
		var m map[string]any
		if err := json.Unmarshal([]byte(row.Value), &m); err != nil {
			log.Printf("WARNING: ignoring malformed setting %q: %v", row.Key, err)
			continue
		}
		applySection(&s, row.Key, m)
	}
	return s
}

// EncodeSetting merges value into the current section for key and returns the JSON document to
// store remotely. Value may be a section struct or a map with camelCase or snake_case keys.
func EncodeSetting(key string, value any, current domain.SystemSettings) (string, error) {
	m, err := toMap(value)
	if err != nil {
		return "", fmt.Errorf("failed to read value for %s: %w", key, err)
	}

	if !applySection(&current, key, m) {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	var doc map[string]any
	switch key {
	case domain.SettingBusinessRules:
		r := current.BusinessRules
		doc = map[string]any{
			"max_loan_days":          r.MaxLoanDays,
			"max_simultaneous_loans": r.MaxSimultaneousLoans,
			"max_renewals":           r.MaxRenewals,
			"due_warning_days":       r.DueWarningDays,
		}
	case domain.SettingLibraryInfo:
		l := current.Library
		doc = map[string]any{
			"name":    l.Name,
			"email":   l.Email,
			"phone":   l.Phone,
			"address": l.Address,
		}
	case domain.SettingNotifications:
		n := current.Notifications
		doc = map[string]any{
			"email_enabled": n.EmailEnabled,
			"due_reminders": n.DueReminders,
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return string(data), nil
}

// DefaultSettingRows returns one row per known key holding the defaults.
func DefaultSettingRows() []entities.Setting {
	defaults := domain.DefaultSystemSettings()
	sections := map[string]any{
		domain.SettingBusinessRules: defaults.BusinessRules,
		domain.SettingLibraryInfo:   defaults.Library,
		domain.SettingNotifications: defaults.Notifications,
	}

	rows := make([]entities.Setting, 0, len(sections))
	for _, key := range []string{domain.SettingBusinessRules, domain.SettingLibraryInfo, domain.SettingNotifications} {
		value, err := EncodeSetting(key, sections[key], defaults)
		if err != nil {
			continue
		}
		rows = append(rows, entities.Setting{Key: key, Value: value})
	}
	return rows
}

func applySection(s *domain.SystemSettings, key string, m map[string]any) bool {
	switch key {
	case domain.SettingBusinessRules:
		applyBusinessRules(&s.BusinessRules, m)
	case domain.SettingLibraryInfo:
		applyLibraryInfo(&s.Library, m)
	case domain.SettingNotifications:
		applyNotifications(&s.Notifications, m)
	default:
		return false
	}
	return true
}

func applyBusinessRules(r *domain.BusinessRules, m map[string]any) {
	setInt := func(dst *int, keys ...string) {
		if v, ok := lookup(m, keys...); ok {
			if n, ok := anyInt(v); ok {
				*dst = n
			}
		}
	}
	setInt(&r.MaxLoanDays, "max_loan_days", "maxLoanDays")
	setInt(&r.MaxSimultaneousLoans, "max_simultaneous_loans", "maxSimultaneousLoans")
	setInt(&r.MaxRenewals, "max_renewals", "maxRenewals")
	setInt(&r.DueWarningDays, "due_warning_days", "dueWarningDays")
}

func applyLibraryInfo(l *domain.LibraryInfo, m map[string]any) {
	setStr := func(dst *string, key string) {
		if v, ok := m[key]; ok {
			if s, ok := anyString(v); ok {
				*dst = s
			}
		}
	}
	setStr(&l.Name, "name")
	setStr(&l.Email, "email")
	setStr(&l.Phone, "phone")
	setStr(&l.Address, "address")
}

func applyNotifications(n *domain.NotificationSettings, m map[string]any) {
	setBool := func(dst *bool, keys ...string) {
		if v, ok := lookup(m, keys...); ok {
			if b, ok := anyBool(v); ok {
				*dst = b
			}
		}
	}
	setBool(&n.EmailEnabled, "email_enabled", "emailEnabled")
	setBool(&n.DueReminders, "due_reminders", "dueReminders")
}

func toMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case nil:
		return map[string]any{}, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
