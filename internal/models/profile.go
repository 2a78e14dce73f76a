package models

import "time"

// Profile is the local user created during onboarding
type Profile struct {
	ID          string    `json:"id" yaml:"id"`
	FirstName   string    `json:"first_name" yaml:"first_name"`
	LastName    string    `json:"last_name" yaml:"last_name"`
	Username    string    `json:"username" yaml:"username"`
	PhoneNumber string    `json:"phone_number" yaml:"phone_number"` // E.164, e.g. +905551234567
	Age         *int      `json:"age,omitempty" yaml:"age,omitempty"`
	Nationality string    `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// ReminderDelivery records that a reminder was delivered for a logical day
type ReminderDelivery struct {
	ReminderID  string    `json:"reminder_id"`
	Day         string    `json:"day"` // YYYY-MM-DD format
	DeliveredAt time.Time `json:"delivered_at"`
}
