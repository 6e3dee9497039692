package presencestore

import (
	"context"
	"time"

	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusOverrideModel struct {
	User          string    `gorm:"primaryKey;column:user_id;size:128"`
	Status        string    `gorm:"column:status;size:16"`
	CustomMessage string    `gorm:"column:custom_message;size:255"`
	ActiveChannel string    `gorm:"column:active_channel;size:128"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	LastSeenAt    time.Time `gorm:"column:last_seen_at"`
}

func (StatusOverrideModel) TableName() string {
	return "presence_status_overrides"
}

type StatusGormRepository struct {
	db *gorm.DB
}

func NewStatusGormRepository(db *gorm.DB) domainPresence.IStatusRepository {
	return &StatusGormRepository{db: db}
}

func (r *StatusGormRepository) Upsert(ctx context.Context, override domainPresence.StatusOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":         string(override.Status),
			"custom_message": override.CustomMessage,
			"active_channel": override.ActiveChannel,
			"updated_at":     override.UpdatedAt,
			"last_seen_at":   override.LastSeenAt,
		}),
	}).Create(&StatusOverrideModel{
		User:          override.User,
		Status:        string(override.Status),
		CustomMessage: override.CustomMessage,
		ActiveChannel: override.ActiveChannel,
		UpdatedAt:     override.UpdatedAt,
		LastSeenAt:    override.LastSeenAt,
	}).Error
}

// TouchLastSeen bumps last_seen_at only. A user that heartbeats without ever
// declaring a status gets an implicit "online" row, so the lastSeen fallback
// rule has something to work with.
func (r *StatusGormRepository) TouchLastSeen(ctx context.Context, user string, at time.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_seen_at": at,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lte{Column: clause.Column{Table: "presence_status_overrides", Name: "last_seen_at"}, Value: at},
		}},
	}).Create(&StatusOverrideModel{
		User:       user,
		Status:     string(domainPresence.StatusOnline),
		UpdatedAt:  at,
		LastSeenAt: at,
	}).Error
}

func (r *StatusGormRepository) Get(ctx context.Context, user string) (*domainPresence.StatusOverride, error) {
	var m StatusOverrideModel
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &domainPresence.StatusOverride{
		User:          m.User,
		Status:        domainPresence.Status(m.Status),
		CustomMessage: m.CustomMessage,
		ActiveChannel: m.ActiveChannel,
		UpdatedAt:     m.UpdatedAt,
		LastSeenAt:    m.LastSeenAt,
	}, nil
}
