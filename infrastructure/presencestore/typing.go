package presencestore

import (
	"context"
	"time"

	domainTyping "github.com/AzielCF/az-presence/domains/typing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TypingModel struct {
	Channel   string    `gorm:"primaryKey;column:channel;size:128"`
	Member    string    `gorm:"primaryKey;column:member_id;size:128"`
	LastTyped time.Time `gorm:"column:last_typed;index"`
}

func (TypingModel) TableName() string {
	return "typing_records"
}

type TypingGormRepository struct {
	db *gorm.DB
}

func NewTypingGormRepository(db *gorm.DB) domainTyping.ITypingRepository {
	return &TypingGormRepository{db: db}
}

func (r *TypingGormRepository) Upsert(ctx context.Context, channel, member string, at time.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "channel"}, {Name: "member_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_typed": at,
		}),
	}).Create(&TypingModel{
		Channel:   channel,
		Member:    member,
		LastTyped: at,
	}).Error
}

func (r *TypingGormRepository) Delete(ctx context.Context, channel, member string) error {
	return r.db.WithContext(ctx).
		Delete(&TypingModel{}, "channel = ? AND member_id = ?", channel, member).Error
}

func (r *TypingGormRepository) ListSince(ctx context.Context, channel string, cutoff time.Time) ([]string, error) {
	var members []string
	err := r.db.WithContext(ctx).Model(&TypingModel{}).
		Where("channel = ? AND last_typed >= ?", channel, cutoff).
		Order("member_id").
		Pluck("member_id", &members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *TypingGormRepository) DeleteBefore(ctx context.Context, channel string, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Delete(&TypingModel{}, "channel = ? AND last_typed < ?", channel, cutoff).Error
}
