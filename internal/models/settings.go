package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone" yaml:"timezone"`                           // IANA timezone name, or "Local" for the system timezone
	CoachModel           string `json:"coach_model" yaml:"coach_model"`                     // generative model used by the coach
	CoachEnabled         bool   `json:"coach_enabled" yaml:"coach_enabled"`                 // whether coach commands call the model at all
	NotificationsEnabled bool   `json:"notifications_enabled" yaml:"notifications_enabled"` // whether to send streak notifications
	UserName             string `json:"user_name" yaml:"user_name"`                         // shown in greetings
}
