package invoice

import (
	"github.com/enotehq/enote/internal/invoice/render"
	"github.com/enotehq/enote/internal/invoice/repository"
	"github.com/enotehq/enote/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
