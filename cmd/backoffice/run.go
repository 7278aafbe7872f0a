package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run starts the application and blocks until ctx is cancelled or fx asks to
// shut down. Stop always runs on a fresh context so hooks get their own
// deadline.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start backoffice: %w", err)
	}

	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		if sig.ExitCode != 0 {
			_ = app.Stop(context.Background())
			return fmt.Errorf("backoffice exited with code %d", sig.ExitCode)
		}
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop backoffice: %w", err)
	}
	return nil
}
