package config

import "go.uber.org/fx"

// Module loads flags, environment and .env into a single *Config.
var Module = fx.Provide(Load)
