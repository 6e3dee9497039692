package usecase

import (
	"context"
	"time"

	"github.com/AzielCF/az-presence/core/config"
	"github.com/AzielCF/az-presence/core/settings"
	"github.com/AzielCF/az-presence/domains/common"
	domainTyping "github.com/AzielCF/az-presence/domains/typing"
	"github.com/AzielCF/az-presence/pkg/metrics"
)

type typingService struct {
	repo       domainTyping.ITypingRepository
	settings   *settings.Service // optional
	defaultTTL time.Duration
	sink       common.EventSink
}

func NewTypingService(repo domainTyping.ITypingRepository, settingsSvc *settings.Service) domainTyping.ITypingUsecase {
	svc := &typingService{
		repo:       repo,
		settings:   settingsSvc,
		defaultTTL: 5 * time.Second,
	}
	if cfg := config.Global; cfg != nil && cfg.Typing.TTLMs > 0 {
		svc.defaultTTL = time.Duration(cfg.Typing.TTLMs) * time.Millisecond
	}
	return svc
}

func (s *typingService) SetEventSink(sink common.EventSink) {
	s.sink = sink
}

func (s *typingService) emit(code, message string, result any) {
	if s.sink != nil {
		s.sink(code, message, result)
	}
}

func (s *typingService) ttl(ctx context.Context) time.Duration {
	if s.settings != nil {
		if ds, err := s.settings.GetDynamicSettings(ctx); err == nil && ds.TypingTTLMs != nil {
			return time.Duration(*ds.TypingTTLMs) * time.Millisecond
		}
	}
	return s.defaultTTL
}

func (s *typingService) Mark(ctx context.Context, request domainTyping.MarkRequest) error {
	if err := s.repo.Upsert(ctx, request.Channel, request.Member, time.Now().UTC()); err != nil {
		return storeErr(err)
	}
	metrics.TypingMarksTotal.Inc()

	s.emit(common.EventTypingMark, "typing", map[string]any{
		"channel": request.Channel, "member": request.Member,
	})
	return nil
}

func (s *typingService) Clear(ctx context.Context, request domainTyping.ClearRequest) error {
	if err := s.repo.Delete(ctx, request.Channel, request.Member); err != nil {
		return storeErr(err)
	}

	s.emit(common.EventTypingClear, "stopped typing", map[string]any{
		"channel": request.Channel, "member": request.Member,
	})
	return nil
}

// List computes expiry lazily: no scheduled sweep, just a cutoff filter at
// read time plus an opportunistic purge of expired rows.
func (s *typingService) List(ctx context.Context, channel string, ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.ttl(ctx)
	}
	cutoff := time.Now().UTC().Add(-ttl)

	_ = s.repo.DeleteBefore(ctx, channel, cutoff)

	members, err := s.repo.ListSince(ctx, channel, cutoff)
	if err != nil {
		return nil, storeErr(err)
	}
	return members, nil
}
