package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/AzielCF/az-presence/core/config"
	"github.com/AzielCF/az-presence/core/settings"
	"github.com/AzielCF/az-presence/domains/common"
	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	pkgError "github.com/AzielCF/az-presence/pkg/error"
	"github.com/AzielCF/az-presence/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type presenceService struct {
	heartbeats domainPresence.IHeartbeatRepository
	statuses   domainPresence.IStatusRepository
	settings   *settings.Service // optional, nil disables dynamic overrides

	mu               sync.RWMutex
	staleTimeout     time.Duration
	maxAgeMultiplier int
	gcInterval       time.Duration
	gcMultiplier     int

	sink common.EventSink
}

func NewPresenceService(heartbeats domainPresence.IHeartbeatRepository, statuses domainPresence.IStatusRepository, settingsSvc *settings.Service) domainPresence.IPresenceUsecase {
	svc := &presenceService{
		heartbeats:       heartbeats,
		statuses:         statuses,
		settings:         settingsSvc,
		staleTimeout:     30 * time.Second,
		maxAgeMultiplier: 2,
		gcInterval:       time.Minute,
		gcMultiplier:     4,
	}

	if cfg := config.Global; cfg != nil {
		if cfg.Presence.StaleTimeoutMs > 0 {
			svc.staleTimeout = time.Duration(cfg.Presence.StaleTimeoutMs) * time.Millisecond
		}
		if cfg.Presence.MaxAgeMultiplier > 0 {
			svc.maxAgeMultiplier = cfg.Presence.MaxAgeMultiplier
		}
		if cfg.Presence.GCIntervalMins > 0 {
			svc.gcInterval = time.Duration(cfg.Presence.GCIntervalMins) * time.Minute
		}
		if cfg.Presence.GCMaxAgeMultiplier > 0 {
			svc.gcMultiplier = cfg.Presence.GCMaxAgeMultiplier
		}
	}

	return svc
}

func (s *presenceService) SetEventSink(sink common.EventSink) {
	s.sink = sink
}

func (s *presenceService) emit(code, message string, result any) {
	if s.sink != nil {
		s.sink(code, message, result)
	}
}

func storeErr(err error) error {
	return pkgError.StoreUnavailableError(err.Error())
}

func (s *presenceService) Beat(ctx context.Context, request domainPresence.HeartbeatRequest) error {
	if request.IntervalMs <= 0 {
		return pkgError.ValidationError("interval_ms must be greater than zero")
	}

	at := time.Now().UTC()
	if request.SentAtMs > 0 {
		at = time.UnixMilli(request.SentAtMs).UTC()
	}

	accepted, err := s.heartbeats.Upsert(ctx, request.Room, request.User, request.Session, request.IntervalMs, at)
	if err != nil {
		return storeErr(err)
	}
	if !accepted {
		// Reordered packet arrived after a fresher one; dropping it keeps
		// last_heartbeat monotonic per session.
		metrics.HeartbeatsRejectedTotal.Inc()
		logrus.Debugf("[PRESENCE] Dropped stale heartbeat for %s/%s/%s", request.Room, request.User, request.Session)
		return nil
	}
	metrics.HeartbeatsTotal.Inc()

	// Any heartbeat is an activity signal for the lastSeen fallback rule.
	if err := s.statuses.TouchLastSeen(ctx, request.User, at); err != nil {
		return storeErr(err)
	}

	s.emit(common.EventPresenceBeat, "heartbeat", map[string]any{
		"room": request.Room, "user": request.User, "session": request.Session,
	})
	return nil
}

func (s *presenceService) Leave(ctx context.Context, request domainPresence.LeaveRequest) error {
	if err := s.heartbeats.Delete(ctx, request.Room, request.User, request.Session); err != nil {
		return storeErr(err)
	}

	s.emit(common.EventPresenceLeave, "left room", map[string]any{
		"room": request.Room, "user": request.User, "session": request.Session,
	})
	return nil
}

func (s *presenceService) ListActive(ctx context.Context, room string, maxAgeMultiplier int) ([]domainPresence.ActiveSession, error) {
	if maxAgeMultiplier <= 0 {
		s.mu.RLock()
		maxAgeMultiplier = s.maxAgeMultiplier
		s.mu.RUnlock()
	}

	active, err := s.heartbeats.ListActive(ctx, room, time.Now().UTC(), maxAgeMultiplier)
	if err != nil {
		return nil, storeErr(err)
	}
	return active, nil
}

func (s *presenceService) SetStatus(ctx context.Context, request domainPresence.SetStatusRequest) (domainPresence.StatusOverride, error) {
	if !request.Status.Valid() {
		return domainPresence.StatusOverride{}, pkgError.ValidationError("status must be one of online, away, busy, dnd, offline")
	}

	now := time.Now().UTC()
	lastSeen := now
	if request.Status == domainPresence.StatusOffline {
		// Going offline is not an activity signal; keep the old lastSeen.
		existing, err := s.statuses.Get(ctx, request.User)
		if err != nil {
			return domainPresence.StatusOverride{}, storeErr(err)
		}
		lastSeen = time.Time{}
		if existing != nil {
			lastSeen = existing.LastSeenAt
		}
	}

	override := domainPresence.StatusOverride{
		User:          request.User,
		Status:        request.Status,
		CustomMessage: request.CustomMessage,
		ActiveChannel: request.ActiveChannel,
		UpdatedAt:     now,
		LastSeenAt:    lastSeen,
	}

	if err := s.statuses.Upsert(ctx, override); err != nil {
		return domainPresence.StatusOverride{}, storeErr(err)
	}

	s.emit(common.EventPresenceStatus, "status changed", override)
	return override, nil
}

func (s *presenceService) GetStatus(ctx context.Context, user string) (domainPresence.StatusOverride, error) {
	override, err := s.statuses.Get(ctx, user)
	if err != nil {
		return domainPresence.StatusOverride{}, storeErr(err)
	}
	if override == nil {
		return domainPresence.StatusOverride{User: user, Status: domainPresence.StatusOffline}, nil
	}
	return *override, nil
}

func (s *presenceService) DerivePresence(ctx context.Context, user, room string) (domainPresence.Presence, error) {
	now := time.Now().UTC()

	s.mu.RLock()
	staleTimeout := s.staleTimeout
	multiplier := s.maxAgeMultiplier
	s.mu.RUnlock()

	override, err := s.statuses.Get(ctx, user)
	if err != nil {
		return domainPresence.Presence{}, storeErr(err)
	}

	hasActive := false
	if override == nil || override.Status == domainPresence.StatusOnline {
		hasActive, err = s.heartbeats.HasActiveSession(ctx, room, user, now, multiplier)
		if err != nil {
			return domainPresence.Presence{}, storeErr(err)
		}
	}

	presence := derivePresence(override, hasActive, now, staleTimeout)
	metrics.DerivationsTotal.WithLabelValues(string(presence.Status)).Inc()
	return presence, nil
}

// derivePresence combines the explicit override with heartbeat liveness.
// Precedence: explicit offline, then explicit away/busy/dnd, then heartbeat
// liveness, then the lastSeen timeout fallback.
func derivePresence(override *domainPresence.StatusOverride, hasActiveSession bool, now time.Time, staleTimeout time.Duration) domainPresence.Presence {
	if override == nil {
		if hasActiveSession {
			return domainPresence.Presence{Status: domainPresence.StatusOnline}
		}
		return domainPresence.Presence{Status: domainPresence.StatusOffline}
	}

	switch override.Status {
	case domainPresence.StatusOffline:
		return domainPresence.Presence{Status: domainPresence.StatusOffline, LastActivity: override.LastSeenAt}
	case domainPresence.StatusAway, domainPresence.StatusBusy, domainPresence.StatusDnd:
		// Explicit beats implicit: a dnd user stays dnd while heartbeating.
		return domainPresence.Presence{Status: override.Status, LastActivity: override.LastSeenAt}
	}

	if hasActiveSession {
		return domainPresence.Presence{Status: domainPresence.StatusOnline, LastActivity: override.LastSeenAt}
	}
	if now.Sub(override.LastSeenAt) <= staleTimeout {
		return domainPresence.Presence{Status: domainPresence.StatusOnline, LastActivity: override.LastSeenAt}
	}
	return domainPresence.Presence{Status: domainPresence.StatusOffline, LastActivity: override.LastSeenAt}
}

func (s *presenceService) applyDynamicSettings(ctx context.Context) {
	if s.settings == nil {
		return
	}

	ds, err := s.settings.GetDynamicSettings(ctx)
	if err != nil {
		logrus.WithError(err).Warn("[PRESENCE] Failed to load dynamic settings")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds.PresenceStaleTimeoutMs != nil {
		s.staleTimeout = time.Duration(*ds.PresenceStaleTimeoutMs) * time.Millisecond
	}
	if ds.PresenceMaxAgeMultiplier != nil {
		s.maxAgeMultiplier = *ds.PresenceMaxAgeMultiplier
	}
	if ds.PresenceGCIntervalMins != nil {
		s.gcInterval = time.Duration(*ds.PresenceGCIntervalMins) * time.Minute
	}
	if ds.PresenceGCMaxAgeMultiplier != nil {
		s.gcMultiplier = *ds.PresenceGCMaxAgeMultiplier
	}
}

// StartBackgroundCleanup sweeps heartbeat rows that went stale beyond the
// grace multiple. Read-time staleness never waits for this loop.
func (s *presenceService) StartBackgroundCleanup(ctx context.Context) {
	go func() {
		for {
			s.applyDynamicSettings(ctx)

			s.mu.RLock()
			interval := s.gcInterval
			multiplier := s.gcMultiplier
			s.mu.RUnlock()

			swept, err := s.heartbeats.DeleteStale(ctx, time.Now().UTC(), multiplier)
			if err != nil {
				logrus.WithError(err).Error("[GC] Heartbeat sweep failed")
			} else if swept > 0 {
				metrics.HeartbeatsSweptTotal.Add(float64(swept))
				logrus.Debugf("[GC] Swept %d stale heartbeat rows", swept)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}()
}
