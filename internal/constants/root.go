package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "rizq"
	DefaultKeyringUser = "catalog-connection"
	KeyringUserIDItem  = "user-id"
	DefaultConfigPath  = "~/.config/rizq/rizq.json"
	Version            = "v0.3.0"

	// EnvCatalogConnection is the environment variable holding the catalog
	// connection string, checked before the OS keyring.
	EnvCatalogConnection = "RIZQ_DB_CONNECTION"

	// Cache constants
	CacheFileName = "catalog.json"

	// Session States
	StateToday SessionState = iota
	StateJourneys
	StateProgress
	StateAddHabit
	StateConfirmQuit
)
