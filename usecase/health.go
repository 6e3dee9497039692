package usecase

import (
	"context"
	"os"

	"github.com/AzielCF/az-presence/core/config"
	domainHealth "github.com/AzielCF/az-presence/domains/health"
	"github.com/AzielCF/az-presence/infrastructure/valkey"
	"github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

type healthService struct {
	db *gorm.DB
	vk *valkey.Client // nil when valkey is disabled
}

func NewHealthService(db *gorm.DB, vk *valkey.Client) domainHealth.IHealthUsecase {
	return &healthService{db: db, vk: vk}
}

func (s *healthService) Check(ctx context.Context) (domainHealth.HealthReport, error) {
	report := domainHealth.HealthReport{
		Database: domainHealth.StatusOk,
		Valkey:   domainHealth.StatusUnknown,
	}
	if cfg := config.Global; cfg != nil {
		report.Version = cfg.App.Version
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		report.Database = domainHealth.StatusError
		report.DatabaseError = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		report.Database = domainHealth.StatusError
		report.DatabaseError = err.Error()
	}

	if cfg := config.Global; cfg != nil && (cfg.Database.Driver == "sqlite" || cfg.Database.Driver == "") {
		if info, err := os.Stat(cfg.Database.Name); err == nil {
			report.StorageBytes = info.Size()
			report.StorageHuman = humanize.Bytes(uint64(info.Size()))
		}
	}

	if s.vk != nil {
		if s.vk.IsConnected() {
			report.Valkey = domainHealth.StatusOk
		} else {
			report.Valkey = domainHealth.StatusError
		}
	}

	return report, nil
}
