package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

// StatusMessage is reported by the health endpoint while the API is up.
const StatusMessage = "Task Management API is running"

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetStatus(ctx context.Context) models.StatusResponse {
	return models.StatusResponse{
		Message: StatusMessage,
		Version: s.appVersion,
	}
}
