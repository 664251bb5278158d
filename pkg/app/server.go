package app

import (
	"context"

	"github.com/shashiranjanraj/chefmenu/internal/server"
)

// Serve listens on addr until ctx is cancelled, then drains in-flight
// requests.
func (a *Application) Serve(ctx context.Context, addr string) error {
	return server.Run(ctx, addr, a.Handler())
}
