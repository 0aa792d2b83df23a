package domain

// Setting keys as stored remotely.
const (
	SettingBusinessRules = "business_rules"
	SettingLibraryInfo   = "library_info"
	SettingNotifications = "notifications"
)

// BusinessRules governs lending.
type BusinessRules struct {
	MaxLoanDays          int `json:"maxLoanDays"`
	MaxSimultaneousLoans int `json:"maxSimultaneousLoans"`
	MaxRenewals          int `json:"maxRenewals"`
	DueWarningDays       int `json:"dueWarningDays"`
}

// DefaultBusinessRules are used for any rule the remote side does not provide.
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		MaxLoanDays:          15,
		MaxSimultaneousLoans: 3,
		MaxRenewals:          2,
		DueWarningDays:       3,
	}
}

type LibraryInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type NotificationSettings struct {
	EmailEnabled bool `json:"emailEnabled"`
	DueReminders bool `json:"dueReminders"`
}

type SystemSettings struct {
	BusinessRules BusinessRules        `json:"businessRules"`
	Library       LibraryInfo          `json:"library"`
	Notifications NotificationSettings `json:"notifications"`
}

func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		BusinessRules: DefaultBusinessRules(),
		Library:       LibraryInfo{Name: "Library"},
		Notifications: NotificationSettings{DueReminders: true},
	}
}
