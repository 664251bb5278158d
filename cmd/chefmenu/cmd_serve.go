package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/chefmenu/app/bot"
	"github.com/shashiranjanraj/chefmenu/config"
	"github.com/shashiranjanraj/chefmenu/internal/kernel"
	"github.com/shashiranjanraj/chefmenu/pkg/grpc"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
)

var shutdownTimeout = 15 * time.Second

// chefmenu serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server (plus gRPC health, Telegram bot and card schedule when configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	k, err := kernel.Boot(ctx, kernel.Options{})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := k.Close(closeCtx); err != nil {
			logger.Warn("kernel close", "error", err)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return k.App.Serve(ctx, ":"+config.AppPort())
	})

	if port := config.GRPCPort(); port != "" {
		srv := grpc.New()
		g.Go(func() error { return srv.Start(port) })
		g.Go(func() error {
			<-ctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			srv.Stop(stopCtx)
			return nil
		})
	}

	if s := k.Scheduler(config.MenuCardEvery()); s != nil {
		logger.Info("menu card schedule enabled", "every", config.MenuCardEvery())
		g.Go(func() error { s.Start(ctx); return nil })
	}

	if token := config.TelegramToken(); token != "" {
		b, err := bot.New(bot.Config{
			Token:   token,
			Retries: config.BotRetries(),
			Workers: config.BotWorkers(),
			Chef:    config.ChefName(),
		}, k.Menu)
		if err != nil {
			logger.Error("telegram bot disabled", "error", err)
		} else {
			g.Go(func() error {
				err := b.Run(ctx)
				closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return errors.Join(err, b.Close(closeCtx))
			})
		}
	}

	logger.Info("chefmenu started", "env", config.AppEnv(), "port", config.AppPort(), "chef", config.ChefName())
	err = g.Wait()
	logger.Info("chefmenu stopped")
	return err
}
