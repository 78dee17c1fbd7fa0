package models

import "time"

// DateOverrideKey holds the simulated "today" (YYYY-MM-DD) or an empty value.
const DateOverrideKey = "date_override"

type SystemSetting struct {
	ID           int       `json:"id"`
	SettingKey   string    `json:"settingKey"`
	SettingValue string    `json:"settingValue"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpdateSettingRequest struct {
	SettingValue string `json:"settingValue"`
}

// DateOverrideRequest sets or clears the simulated system date
type DateOverrideRequest struct {
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Enabled bool   `json:"enabled"`
}

// DateOverride is the API view of the date override setting
type DateOverride struct {
	Enabled       bool      `json:"enabled"`
	Date          string    `json:"date,omitempty"`
	EffectiveTime time.Time `json:"effectiveTime"`
}
