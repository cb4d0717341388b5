package models

import "github.com/rizqapp/rizq/internal/constants"

// Settings holds user-tunable application settings.
type Settings struct {
	Timezone     string `json:"timezone"`
	CacheTTLMin  int    `json:"cache_ttl_min"`
	LogDays      int    `json:"log_days"`
	ShowArabic   bool   `json:"show_arabic"`
	ShowBenefits bool   `json:"show_benefits"`
}

// DefaultSettings returns the settings written on init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:     constants.DefaultTimezone,
		CacheTTLMin:  constants.DefaultCacheTTLMin,
		LogDays:      constants.DefaultLogDays,
		ShowArabic:   constants.DefaultShowArabic,
		ShowBenefits: constants.DefaultShowBenefits,
	}
}
