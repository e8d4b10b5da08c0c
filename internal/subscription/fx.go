package subscription

import (
	"github.com/enotehq/enote/internal/subscription/repository"
	"github.com/enotehq/enote/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
