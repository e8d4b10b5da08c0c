package owner

import (
	"github.com/enotehq/enote/internal/owner/repository"
	"github.com/enotehq/enote/internal/owner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("owner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
