package health

import "context"

type Status string

const (
	StatusOk      Status = "OK"
	StatusError   Status = "ERROR"
	StatusUnknown Status = "UNKNOWN"
)

type HealthReport struct {
	Database      Status `json:"database"`
	DatabaseError string `json:"database_error,omitempty"`
	StorageBytes  int64  `json:"storage_bytes"`
	StorageHuman  string `json:"storage_human"`
	Valkey        Status `json:"valkey"`
	Version       string `json:"version"`
}

type IHealthUsecase interface {
	Check(ctx context.Context) (HealthReport, error)
}
