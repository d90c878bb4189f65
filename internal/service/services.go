package service

import (
	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	TaskService    TaskService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. Auth, user and task
// services are wrapped with their validation layers.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthValidationService().
			Wrap(NewAuthService(storages.UserRepository, cfg.App, logger)),
		UserService: NewUserValidationService().
			Wrap(NewUserService(storages.UserRepository, storages.TaskRepository, cfg.App, logger)),
		TaskService: NewTaskValidationService().
			Wrap(NewTaskService(storages.TaskRepository, logger)),
		AppInfoService: appInfoService,
	}, nil
}
