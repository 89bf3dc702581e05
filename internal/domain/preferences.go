package domain

// NotificationPreferences mirror the per-user notification toggles.
type NotificationPreferences struct {
	EmailNotifications bool `json:"email_notifications"`
	ProjectUpdates     bool `json:"project_updates"`
	TeamMessages       bool `json:"team_messages"`
	DeadlineReminders  bool `json:"deadline_reminders"`
	WeeklyReports      bool `json:"weekly_reports"`
}

// DefaultNotificationPreferences returns the defaults applied before a user
// saves anything.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailNotifications: true,
		ProjectUpdates:     true,
		TeamMessages:       false,
		DeadlineReminders:  true,
		WeeklyReports:      true,
	}
}

// UIPreferences hold per-user display settings.
type UIPreferences struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"date_format"`
	Currency   string `json:"currency"`
}

// DefaultUIPreferences returns the defaults applied before a user saves
// anything.
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{
		Theme:      "light",
		Language:   "en",
		Timezone:   "UTC",
		DateFormat: "MM/DD/YYYY",
		Currency:   "USD",
	}
}

// DashboardStats summarizes project counts for the dashboard. TotalUsers is
// only populated for admins.
type DashboardStats struct {
	TotalProjects     int  `json:"total_projects"`
	ActiveProjects    int  `json:"active_projects"`
	CompletedProjects int  `json:"completed_projects"`
	TotalUsers        *int `json:"total_users,omitempty"`
}
