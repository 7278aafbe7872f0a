package logger

import "go.uber.org/fx"

// Module provides the process-wide *slog.Logger built from config.
var Module = fx.Provide(New)
