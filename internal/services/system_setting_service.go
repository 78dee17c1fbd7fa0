package services

import (
	"context"
	"errors"
	"time"

	"pawn-backend/internal/cache"
	"pawn-backend/internal/logger"
	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/timeutil"
)

// Clock is the system notion of "now". It may be a simulated date.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// SettingStore is the persistence the setting service needs
type SettingStore interface {
	Get(ctx context.Context, key string) (*models.SystemSetting, error)
	List(ctx context.Context) ([]*models.SystemSetting, error)
	Upsert(ctx context.Context, key string, value string, description string) error
}

const dateOverrideDescription = "Simulated system date (YYYY-MM-DD); empty uses the real clock"

type SystemSettingService struct {
	Repo SettingStore
}

func NewSystemSettingService(repo SettingStore) *SystemSettingService {
	return &SystemSettingService{Repo: repo}
}

func (s *SystemSettingService) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	return s.Repo.Get(ctx, key)
}

func (s *SystemSettingService) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.Repo.List(ctx)
}

// Now returns the override date combined with the current IST time of day,
// or the real IST time when no override is set. Lookup failures fall back
// to the real time.
func (s *SystemSettingService) Now(ctx context.Context) time.Time {
	now := timeutil.Now()

	value, err := s.overrideValue(ctx)
	if err != nil {
		logger.LogError("system_setting_service", "Now", "date override lookup", nil, err)
		return now
	}
	if value == "" {
		return now
	}

	day, err := timeutil.ParseDate(value)
	if err != nil {
		logger.LogError("system_setting_service", "Now", "invalid date override", value, err)
		return now
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), timeutil.IST)
}

func (s *SystemSettingService) overrideValue(ctx context.Context) (string, error) {
	if data, ok := cache.GetCached(ctx, cache.DateOverrideKey); ok {
		return string(data), nil
	}

	setting, err := s.Repo.Get(ctx, models.DateOverrideKey)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	cache.SetCached(ctx, cache.DateOverrideKey, []byte(setting.SettingValue), 24*time.Hour)
	return setting.SettingValue, nil
}

// GetDateOverride reports the current override and the effective clock
func (s *SystemSettingService) GetDateOverride(ctx context.Context) (*models.DateOverride, error) {
	value, err := s.overrideValue(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DateOverride{
		Enabled:       value != "",
		Date:          value,
		EffectiveTime: s.Now(ctx),
	}, nil
}

// SetDateOverride stores a simulated date, or clears it when disabled or empty
func (s *SystemSettingService) SetDateOverride(ctx context.Context, req *models.DateOverrideRequest) (*models.DateOverride, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	value := req.Date
	if !req.Enabled {
		value = ""
	}
	if req.Enabled && value == "" {
		return nil, &ValidationError{Fields: map[string]string{"Date": "required"}}
	}

	if err := s.Repo.Upsert(ctx, models.DateOverrideKey, value, dateOverrideDescription); err != nil {
		return nil, err
	}
	cache.InvalidateSettingCaches(ctx)

	logger.Component("system_setting_service").WithField("date", value).Info("date override changed")
	return s.GetDateOverride(ctx)
}

// ClearDateOverride returns the clock to real time
func (s *SystemSettingService) ClearDateOverride(ctx context.Context) (*models.DateOverride, error) {
	return s.SetDateOverride(ctx, &models.DateOverrideRequest{Enabled: false})
}
