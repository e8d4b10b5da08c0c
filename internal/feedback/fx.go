package feedback

import (
	"github.com/enotehq/enote/internal/feedback/repository"
	"github.com/enotehq/enote/internal/feedback/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feedback.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
