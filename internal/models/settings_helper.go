package models

import (
	"fmt"

	"github.com/mgurlek/hybit/internal/constants"
)

// MapToSettings converts stored key-value pairs to a Settings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDayCutoffHour:
			if _, err := fmt.Sscanf(value, "%d", &settings.DayCutoffHour); err != nil {
				return Settings{}, fmt.Errorf("parsing day_cutoff_hour: %w", err)
			}
		case constants.SettingDefaultTargetStreak:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultTargetStreak); err != nil {
				return Settings{}, fmt.Errorf("parsing default_target_streak: %w", err)
			}
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingRandomWindowStart:
			settings.RandomWindowStart = value
		case constants.SettingRandomWindowEnd:
			settings.RandomWindowEnd = value
		case constants.SettingNotificationGraceMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.NotificationGraceMin); err != nil {
				return Settings{}, fmt.Errorf("parsing notification_grace_min: %w", err)
			}
		case constants.SettingActiveProfileID:
			settings.ActiveProfileID = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to key-value pairs for storage.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingDayCutoffHour:        fmt.Sprintf("%d", settings.DayCutoffHour),
		constants.SettingDefaultTargetStreak:  fmt.Sprintf("%d", settings.DefaultTargetStreak),
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingRandomWindowStart:    settings.RandomWindowStart,
		constants.SettingRandomWindowEnd:      settings.RandomWindowEnd,
		constants.SettingNotificationGraceMin: fmt.Sprintf("%d", settings.NotificationGraceMin),
		constants.SettingActiveProfileID:      settings.ActiveProfileID,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DayCutoffHour < 0 || settings.DayCutoffHour > 23 {
		settings.DayCutoffHour = constants.DefaultDayCutoffHour
	}
	if settings.DefaultTargetStreak < 1 {
		settings.DefaultTargetStreak = constants.DefaultTargetStreak
	}
	if settings.RandomWindowStart == "" {
		settings.RandomWindowStart = constants.DefaultRandomWindowStart
	}
	if settings.RandomWindowEnd == "" {
		settings.RandomWindowEnd = constants.DefaultRandomWindowEnd
	}
	if settings.NotificationGraceMin <= 0 {
		settings.NotificationGraceMin = constants.DefaultNotificationGraceMin
	}
}
