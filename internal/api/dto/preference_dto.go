package dto

// NotificationPreferencesPayload carries notification toggles both ways.
type NotificationPreferencesPayload struct {
	EmailNotifications bool `json:"email_notifications"`
	ProjectUpdates     bool `json:"project_updates"`
	TeamMessages       bool `json:"team_messages"`
	DeadlineReminders  bool `json:"deadline_reminders"`
	WeeklyReports      bool `json:"weekly_reports"`
}

// UIPreferencesPayload carries display settings both ways.
type UIPreferencesPayload struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"date_format"`
	Currency   string `json:"currency"`
}
