package models

import "github.com/mgurlek/hybit/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone" yaml:"timezone"`                             // IANA timezone name, or "Local" for the system timezone
	DayCutoffHour        int    `json:"day_cutoff_hour" yaml:"day_cutoff_hour"`               // hour before which a timestamp belongs to the previous day
	DefaultTargetStreak  int    `json:"default_target_streak" yaml:"default_target_streak"`   // target streak for new habits
	NotificationsEnabled bool   `json:"notifications_enabled" yaml:"notifications_enabled"`   // whether reminders are delivered
	RandomWindowStart    string `json:"random_window_start" yaml:"random_window_start"`       // earliest random reminder, HH:MM
	RandomWindowEnd      string `json:"random_window_end" yaml:"random_window_end"`           // latest random reminder, HH:MM
	NotificationGraceMin int    `json:"notification_grace_min" yaml:"notification_grace_min"` // how late a reminder may still be delivered
	ActiveProfileID      string `json:"active_profile_id,omitempty" yaml:"active_profile_id,omitempty"`
}

// DefaultSettings returns the settings a fresh database starts with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		DayCutoffHour:        constants.DefaultDayCutoffHour,
		DefaultTargetStreak:  constants.DefaultTargetStreak,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		RandomWindowStart:    constants.DefaultRandomWindowStart,
		RandomWindowEnd:      constants.DefaultRandomWindowEnd,
		NotificationGraceMin: constants.DefaultNotificationGraceMin,
	}
}
