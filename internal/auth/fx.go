package auth

import (
	"github.com/enotehq/enote/internal/auth/service"
	"github.com/enotehq/enote/internal/auth/token"
	"github.com/enotehq/enote/internal/config"
	"go.uber.org/fx"
)

func provideIssuer(cfg config.Config) (*token.Issuer, error) {
	return token.NewIssuer(token.Config{
		Secret: cfg.AuthJWTSecret,
		TTL:    cfg.AuthTokenTTL,
	})
}

var Module = fx.Module("auth.service",
	fx.Provide(provideIssuer),
	fx.Provide(service.NewService),
)
