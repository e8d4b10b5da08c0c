package product

import (
	"github.com/enotehq/enote/internal/product/repository"
	"github.com/enotehq/enote/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
