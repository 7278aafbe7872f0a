package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/backoffice/internal/config"
)

// Module provides the notification hub and runs it for the app lifetime.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Invoke(registerLifecycle),
)

type hubParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newHub(p hubParams) *Hub {
	return NewHub(p.Logger, p.Config.CORSOrigins...)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-hub.Done():
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
