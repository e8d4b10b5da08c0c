package employee

import (
	"github.com/enotehq/enote/internal/employee/repository"
	"github.com/enotehq/enote/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
