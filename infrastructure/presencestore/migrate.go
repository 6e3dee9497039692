package presencestore

import "gorm.io/gorm"

// Migrate creates or updates the presence tables. Called once at boot.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&HeartbeatModel{},
		&StatusOverrideModel{},
		&TypingModel{},
		&UnreadCounterModel{},
	)
}
