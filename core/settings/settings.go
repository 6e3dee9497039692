package settings

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Keys of dynamic settings stored in the database. Values set here win over
// the environment-derived defaults in core/config.
const (
	KeyPresenceStaleTimeoutMs     = "presence_stale_timeout_ms"
	KeyPresenceMaxAgeMultiplier   = "presence_max_age_multiplier"
	KeyPresenceGCIntervalMins     = "presence_gc_interval_mins"
	KeyPresenceGCMaxAgeMultiplier = "presence_gc_max_age_multiplier"
	KeyTypingTTLMs                = "typing_ttl_ms"
)

type GlobalSettingModel struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (GlobalSettingModel) TableName() string {
	return "global_settings"
}

// Repository persists dynamic settings through gorm.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&GlobalSettingModel{})
}

func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	var m GlobalSettingModel
	if err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(m.Value), nil
}

func (r *Repository) Set(ctx context.Context, key string, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&GlobalSettingModel{
		Key:   key,
		Value: value,
	}).Error
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&GlobalSettingModel{}, "key = ?", key).Error
}
