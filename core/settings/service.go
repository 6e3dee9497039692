package settings

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

type Service struct {
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: NewRepository(db)}
}

// DynamicSettings carries the tunables that can be changed at runtime.
// Nil pointer means "not set, keep the configured default".
type DynamicSettings struct {
	PresenceStaleTimeoutMs     *int64 `json:"presence_stale_timeout_ms,omitempty"`
	PresenceMaxAgeMultiplier   *int   `json:"presence_max_age_multiplier,omitempty"`
	PresenceGCIntervalMins     *int   `json:"presence_gc_interval_mins,omitempty"`
	PresenceGCMaxAgeMultiplier *int   `json:"presence_gc_max_age_multiplier,omitempty"`
	TypingTTLMs                *int64 `json:"typing_ttl_ms,omitempty"`
}

func (s *Service) GetDynamicSettings(ctx context.Context) (*DynamicSettings, error) {
	if err := s.repo.InitSchema(ctx); err != nil {
		return nil, err
	}

	ds := &DynamicSettings{}

	if val, _ := s.repo.Get(ctx, KeyPresenceStaleTimeoutMs); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			ds.PresenceStaleTimeoutMs = &n
		}
	}
	if val, _ := s.repo.Get(ctx, KeyPresenceMaxAgeMultiplier); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			ds.PresenceMaxAgeMultiplier = &n
		}
	}
	if val, _ := s.repo.Get(ctx, KeyPresenceGCIntervalMins); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			ds.PresenceGCIntervalMins = &n
		}
	}
	if val, _ := s.repo.Get(ctx, KeyPresenceGCMaxAgeMultiplier); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			ds.PresenceGCMaxAgeMultiplier = &n
		}
	}
	if val, _ := s.repo.Get(ctx, KeyTypingTTLMs); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			ds.TypingTTLMs = &n
		}
	}
	return ds, nil
}

func (s *Service) SetPresenceStaleTimeout(ctx context.Context, ms int64) error {
	if ms < 0 {
		ms = 0
	}
	return s.repo.Set(ctx, KeyPresenceStaleTimeoutMs, fmt.Sprintf("%d", ms))
}

func (s *Service) SetPresenceMaxAgeMultiplier(ctx context.Context, v int) error {
	if v < 1 {
		v = 1
	}
	return s.repo.Set(ctx, KeyPresenceMaxAgeMultiplier, fmt.Sprintf("%d", v))
}

func (s *Service) SetPresenceGCInterval(ctx context.Context, mins int) error {
	if mins < 1 {
		mins = 1
	}
	return s.repo.Set(ctx, KeyPresenceGCIntervalMins, fmt.Sprintf("%d", mins))
}

func (s *Service) SetPresenceGCMaxAgeMultiplier(ctx context.Context, v int) error {
	if v < 1 {
		v = 1
	}
	return s.repo.Set(ctx, KeyPresenceGCMaxAgeMultiplier, fmt.Sprintf("%d", v))
}

func (s *Service) SetTypingTTL(ctx context.Context, ms int64) error {
	if ms < 0 {
		ms = 0
	}
	return s.repo.Set(ctx, KeyTypingTTLMs, fmt.Sprintf("%d", ms))
}
