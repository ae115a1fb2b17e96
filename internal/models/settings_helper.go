package models

import (
	"strconv"

	"github.com/julianstephens/momentum/internal/constants"
)

// MapToSettings converts stored key/value rows to Settings. Unknown keys are
// ignored and missing keys keep their defaults.
func MapToSettings(data map[string]string) Settings {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCoachModel:
			settings.CoachModel = value
		case constants.SettingCoachEnabled:
			settings.CoachEnabled = value == "true"
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingUserName:
			settings.UserName = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingCoachModel:           settings.CoachModel,
		constants.SettingCoachEnabled:         strconv.FormatBool(settings.CoachEnabled),
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingUserName:             settings.UserName,
	}
}

// DefaultSettings returns the settings a fresh store is seeded with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		CoachModel:           constants.DefaultCoachModel,
		CoachEnabled:         constants.DefaultCoachEnabled,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.CoachModel == "" {
		settings.CoachModel = constants.DefaultCoachModel
	}
}
