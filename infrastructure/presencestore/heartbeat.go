package presencestore

import (
	"context"
	"time"

	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HeartbeatModel struct {
	Room          string    `gorm:"primaryKey;column:room;size:128"`
	User          string    `gorm:"primaryKey;column:user_id;size:128"`
	Session       string    `gorm:"primaryKey;column:session_id;size:128"`
	IntervalMs    int64     `gorm:"column:interval_ms"`
	LastHeartbeat time.Time `gorm:"column:last_heartbeat;index"`
}

func (HeartbeatModel) TableName() string {
	return "presence_heartbeats"
}

func (m HeartbeatModel) staleAfter(multiplier int) time.Duration {
	return time.Duration(int64(multiplier)*m.IntervalMs) * time.Millisecond
}

type HeartbeatGormRepository struct {
	db *gorm.DB
}

func NewHeartbeatGormRepository(db *gorm.DB) domainPresence.IHeartbeatRepository {
	return &HeartbeatGormRepository{db: db}
}

// Upsert writes the heartbeat with a monotonic guard: a late-arriving older
// heartbeat must not regress last_heartbeat (blind last-write-wins would).
func (r *HeartbeatGormRepository) Upsert(ctx context.Context, room, user, session string, intervalMs int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "room"}, {Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_heartbeat": at,
			"interval_ms":    intervalMs,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lte{Column: clause.Column{Table: "presence_heartbeats", Name: "last_heartbeat"}, Value: at},
		}},
	}).Create(&HeartbeatModel{
		Room:          room,
		User:          user,
		Session:       session,
		IntervalMs:    intervalMs,
		LastHeartbeat: at,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *HeartbeatGormRepository) Delete(ctx context.Context, room, user, session string) error {
	return r.db.WithContext(ctx).
		Delete(&HeartbeatModel{}, "room = ? AND user_id = ? AND session_id = ?", room, user, session).Error
}

// ListActive filters in Go because the freshness window depends on the
// per-row declared interval; rooms are small enough that this beats
// dialect-specific date math.
func (r *HeartbeatGormRepository) ListActive(ctx context.Context, room string, now time.Time, maxAgeMultiplier int) ([]domainPresence.ActiveSession, error) {
	var rows []HeartbeatModel
	if err := r.db.WithContext(ctx).Find(&rows, "room = ?", room).Error; err != nil {
		return nil, err
	}

	active := make([]domainPresence.ActiveSession, 0, len(rows))
	for _, row := range rows {
		if now.Sub(row.LastHeartbeat) <= row.staleAfter(maxAgeMultiplier) {
			active = append(active, domainPresence.ActiveSession{User: row.User, Session: row.Session})
		}
	}
	return active, nil
}

func (r *HeartbeatGormRepository) HasActiveSession(ctx context.Context, room, user string, now time.Time, maxAgeMultiplier int) (bool, error) {
	var rows []HeartbeatModel
	if err := r.db.WithContext(ctx).Find(&rows, "room = ? AND user_id = ?", room, user).Error; err != nil {
		return false, err
	}

	for _, row := range rows {
		if now.Sub(row.LastHeartbeat) <= row.staleAfter(maxAgeMultiplier) {
			return true, nil
		}
	}
	return false, nil
}

func (r *HeartbeatGormRepository) DeleteStale(ctx context.Context, now time.Time, maxAgeMultiplier int) (int64, error) {
	var rows []HeartbeatModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return 0, err
	}

	var swept int64
	for _, row := range rows {
		if now.Sub(row.LastHeartbeat) <= row.staleAfter(maxAgeMultiplier) {
			continue
		}
		res := r.db.WithContext(ctx).
			Delete(&HeartbeatModel{}, "room = ? AND user_id = ? AND session_id = ? AND last_heartbeat = ?",
				row.Room, row.User, row.Session, row.LastHeartbeat)
		if res.Error != nil {
			return swept, res.Error
		}
		swept += res.RowsAffected
	}
	return swept, nil
}
