package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/backoffice/internal/adapter/backoffice"
	"github.com/polkiloo/backoffice/internal/app"
	"github.com/polkiloo/backoffice/internal/config"
	"github.com/polkiloo/backoffice/internal/logger"
	"github.com/polkiloo/backoffice/internal/notify"
	"github.com/polkiloo/backoffice/internal/pkg/auth"
	"github.com/polkiloo/backoffice/internal/server/http/handlers"
	"github.com/polkiloo/backoffice/internal/server/http/router"
	"github.com/polkiloo/backoffice/internal/storage/postgres"
	"github.com/polkiloo/backoffice/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		backoffice.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(client *backoffice.Client) usecase.OrderGateway { return client },
			func(client *backoffice.Client) usecase.PipelineGateway { return client },
			func(hub *notify.Hub) usecase.Notifier { return hub },
			func(storage *postgres.Storage) app.HealthChecker { return storage },
			func(facade *app.BackofficeFacade) handlers.BackofficeFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
