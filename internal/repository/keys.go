package repository

// Storage keys. Each holds one flat JSON blob: the non-seed subset of a
// collection, or the active session set.
const (
	KeyProjects = "projectflow_projects"
	KeyUsers    = "projectflow_users"
	KeySessions = "projectflow_sessions"

	// Per-user preference keys are derived: <prefix>_<userID>.
	KeyPrefixNotifications = "projectflow_notifications"
	KeyPrefixUIPreferences = "projectflow_preferences"
)
