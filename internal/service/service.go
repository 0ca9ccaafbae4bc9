package service

import (
	"context"

	"telemetry_monitor/internal/models"
	"telemetry_monitor/internal/repository"
)

// Telemetry validates and classifies /temp submissions.
type Telemetry interface {
	Ingest(ctx context.Context, in IngestRequest) (models.Classification, error)
}

// ErrorLog exposes the rejected-payload buffer.
type ErrorLog interface {
	List(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Telemetry
	ErrorLog
}

func NewService(repos *repository.Repository, opts TelemetryOptions) *Service {
	return &Service{
		Telemetry: NewTelemetryService(repos.ErrorBuffer, opts),
		ErrorLog:  NewErrorLogService(repos.ErrorBuffer),
	}
}
