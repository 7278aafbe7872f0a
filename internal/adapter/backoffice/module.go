package backoffice

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/backoffice/internal/config"
)

// Module exposes the back-office API client to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(p.Config.BackofficeAPIAddress, p.Config.BackofficeAPIToken, p.Config.RequestTimeout, p.Logger)
}
