package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingDayCutoffHour        = "day_cutoff_hour"
	SettingDefaultTargetStreak  = "default_target_streak"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingRandomWindowStart    = "random_window_start"
	SettingRandomWindowEnd      = "random_window_end"
	SettingNotificationGraceMin = "notification_grace_min"
	SettingActiveProfileID      = "active_profile_id"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultDayCutoffHour        = 4
	DefaultTargetStreak         = 30
	DefaultNotificationsEnabled = true
	DefaultRandomWindowStart    = "09:00"
	DefaultRandomWindowEnd      = "21:59"
	DefaultNotificationGraceMin = 10
)
