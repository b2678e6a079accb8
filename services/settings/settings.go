package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"servicehub/database/repository"
	settingsRepo "servicehub/database/repository/settings"
	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SettingsService serves the platform settings, cached in Redis.
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings, updatedBy string) (*models.Settings, error)
	InMaintenance(ctx context.Context) bool
}

type DefaultSettingsService struct {
	repo     settingsRepo.SettingsRepository
	cache    *redis.Client
	defaults models.Settings
	logger   *zap.Logger
}

// NewDefaultSettingsService builds the service. cache may be nil.
func NewDefaultSettingsService(repo settingsRepo.SettingsRepository, cache *redis.Client, paymentWindowMinutes int, logger *zap.Logger) *DefaultSettingsService {
	defaults := models.DefaultSettings()
	if paymentWindowMinutes > 0 {
		defaults.PaymentWindowMinutes = paymentWindowMinutes
	}
	return &DefaultSettingsService{repo: repo, cache: cache, defaults: defaults, logger: logger}
}

func (s *DefaultSettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	current, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		d := s.defaults
		current = &d
	} else if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s.toCache(ctx, current)
	return current, nil
}

func (s *DefaultSettingsService) UpdateSettings(ctx context.Context, in models.Settings, updatedBy string) (*models.Settings, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	in.UpdatedAt = time.Now().UTC()
	in.UpdatedBy = updatedBy

	if err := s.repo.Save(ctx, &in); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, utils.SettingsCacheKey).Err(); err != nil {
			s.logger.Warn("Failed to invalidate settings cache", zap.Error(err))
		}
	}
	s.logger.Info("Settings updated", zap.String("by", updatedBy), zap.Bool("maintenance", in.MaintenanceMode))
	return &in, nil
}

// InMaintenance reports the maintenance flag. Lookup failures count as "not in maintenance".
func (s *DefaultSettingsService) InMaintenance(ctx context.Context) bool {
	current, err := s.GetSettings(ctx)
	if err != nil {
		s.logger.Warn("Settings lookup failed", zap.Error(err))
		return false
	}
	return current.MaintenanceMode
}

func validate(in *models.Settings) error {
	in.SiteName = strings.TrimSpace(in.SiteName)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.SupportEmail = strings.TrimSpace(in.SupportEmail)

	if in.SiteName == "" {
		return utils.BadRequest("siteName is required")
	}
	if len(in.Currency) != 3 {
		return utils.BadRequest("currency must be a 3-letter ISO code")
	}
	if in.ServiceFeePercent < 0 || in.ServiceFeePercent > 100 {
		return utils.BadRequest("serviceFeePercent must be between 0 and 100")
	}
	if in.TaxPercent < 0 || in.TaxPercent > 100 {
		return utils.BadRequest("taxPercent must be between 0 and 100")
	}
	if in.PaymentWindowMinutes < 1 {
		return utils.BadRequest("paymentWindowMinutes must be at least 1")
	}
	if in.SupportEmail != "" {
		if _, err := mail.ParseAddress(in.SupportEmail); err != nil {
			return utils.BadRequest("supportEmail is not a valid address")
		}
	}
	return nil
}

func (s *DefaultSettingsService) fromCache(ctx context.Context) (*models.Settings, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, utils.SettingsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Settings cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var out models.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (s *DefaultSettingsService) toCache(ctx context.Context, v *models.Settings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, utils.SettingsCacheKey, raw, utils.SettingsCacheTTL).Err(); err != nil {
		s.logger.Warn("Settings cache write failed", zap.Error(err))
	}
}
