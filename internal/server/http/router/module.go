package router

import "go.uber.org/fx"

// Module provides the gin engine serving the REST API and notification socket.
var Module = fx.Provide(Setup)
