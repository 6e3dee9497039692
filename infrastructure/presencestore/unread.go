package presencestore

import (
	"context"

	domainUnread "github.com/AzielCF/az-presence/domains/unread"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnreadCounterModel struct {
	Channel         string `gorm:"primaryKey;column:channel;size:128"`
	Member          string `gorm:"primaryKey;column:member_id;size:128"`
	Count           int64  `gorm:"column:count"`
	LastSeenMessage string `gorm:"column:last_seen_message;size:128"`
	LastSeenSeq     int64  `gorm:"column:last_seen_seq"`
}

func (UnreadCounterModel) TableName() string {
	return "unread_counters"
}

type UnreadGormRepository struct {
	db *gorm.DB
}

func NewUnreadGormRepository(db *gorm.DB) domainUnread.IUnreadRepository {
	return &UnreadGormRepository{db: db}
}

// Increment is a single-statement upsert so concurrent message inserts can
// never lose an update: the +1 happens inside the database, not in Go.
// The watermark is seeded from the first message only when still unset.
func (r *UnreadGormRepository) Increment(ctx context.Context, channel, member, messageID string, messageSeq int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "channel"}, {Name: "member_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":             gorm.Expr("count + 1"),
			"last_seen_message": gorm.Expr("CASE WHEN last_seen_message = '' THEN ? ELSE last_seen_message END", messageID),
			"last_seen_seq":     gorm.Expr("CASE WHEN last_seen_message = '' THEN ? ELSE last_seen_seq END", messageSeq),
		}),
	}).Create(&UnreadCounterModel{
		Channel:         channel,
		Member:          member,
		Count:           1,
		LastSeenMessage: messageID,
		LastSeenSeq:     messageSeq,
	}).Error
}

// MarkRead applies the monotonicity guard in SQL: the row only changes when
// the new watermark is at or past the recorded one.
func (r *UnreadGormRepository) MarkRead(ctx context.Context, channel, member, uptoMessage string, uptoSeq int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&UnreadCounterModel{}).
		Where("channel = ? AND member_id = ? AND last_seen_seq <= ?", channel, member, uptoSeq).
		Updates(map[string]interface{}{
			"count":             0,
			"last_seen_message": uptoMessage,
			"last_seen_seq":     uptoSeq,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Either the member has no row yet (markRead before any message) or the
	// watermark would regress. Create-then-retry settles the race.
	created := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&UnreadCounterModel{
			Channel:         channel,
			Member:          member,
			Count:           0,
			LastSeenMessage: uptoMessage,
			LastSeenSeq:     uptoSeq,
		})
	if created.Error != nil {
		return false, created.Error
	}
	if created.RowsAffected > 0 {
		return true, nil
	}
	return false, nil
}

func (r *UnreadGormRepository) Get(ctx context.Context, channel, member string) (*domainUnread.Counter, error) {
	var m UnreadCounterModel
	if err := r.db.WithContext(ctx).First(&m, "channel = ? AND member_id = ?", channel, member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &domainUnread.Counter{
		Channel:         m.Channel,
		Member:          m.Member,
		Count:           m.Count,
		LastSeenMessage: m.LastSeenMessage,
		LastSeenSeq:     m.LastSeenSeq,
	}, nil
}
