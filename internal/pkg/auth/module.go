package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/backoffice/internal/config"
)

// Module provides the token strategy via fx.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{Issuer: "backoffice"})
}
