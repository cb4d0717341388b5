package constants

const (
	// General Settings
	SettingTimezone     = "timezone"
	SettingCacheTTLMin  = "cache_ttl_min"
	SettingLogDays      = "log_days"
	SettingShowArabic   = "show_arabic"
	SettingShowBenefits = "show_benefits"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultCacheTTLMin  = 360
	DefaultLogDays      = 14
	DefaultShowArabic   = true
	DefaultShowBenefits = false

	// XP / level constants. Levels are linear: every LevelXPStep lifetime
	// XP advances the user one level.
	LevelXPStep = 250
)
