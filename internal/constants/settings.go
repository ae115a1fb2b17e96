package constants

const (
	SettingTimezone             = "timezone"
	SettingCoachModel           = "coach_model"
	SettingCoachEnabled         = "coach_enabled"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingUserName             = "user_name"

	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultCoachModel           = "gemini-2.5-flash"
	DefaultCoachEnabled         = true
	DefaultNotificationsEnabled = true
)
