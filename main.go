package main

import (
	"context"
	"errors"
	"fmt"
	"gsbot/internal/adapters/handler"
	"gsbot/internal/adapters/metrics"
	"gsbot/internal/adapters/telegram"
	"gsbot/internal/config"
	"gsbot/internal/core/domain"
	"gsbot/internal/core/domain/command"
	"gsbot/internal/core/port"
	"gsbot/internal/core/service"
	"gsbot/internal/logging"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd(telegram.Dial).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(dial port.Dialer) *cobra.Command {
	var configFile string

	v := viper.New()

	cmd := &cobra.Command{
		Use:           "gsbot",
		Short:         "Telegram command bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			err := run(ctx, v, configFile, dial)
			if errors.Is(err, domain.ErrMissingToken) {
				cmd.PrintErrf("Error: %s environment variable is not set.\n", config.TokenEnv)
				return err
			}
			if err != nil {
				cmd.PrintErrf("Error running the bot: %v\n", err)
			}

			return err
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default ./config.toml)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	bindFlags(v, cmd.PersistentFlags())

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
}

func run(ctx context.Context, v *viper.Viper, configFile string, dial port.Dialer) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logging.Setup(cfg.LogLevel, cfg.LogFile)
	log.Info().Msg("starting gsbot...")

	if cfg.BotToken == "" {
		return domain.ErrMissingToken
	}

	manager := service.NewCommandManager(command.NewRegistry())
	if err := manager.PopulateBotHandlers(); err != nil {
		return fmt.Errorf("failed populating command handlers: %w", err)
	}

	opts := []handler.Option{handler.WithTimeout(cfg.HandlerTimeout)}

	if cfg.MetricsAddr != "" {
		registry := metrics.NewRegistry()
		opts = append(opts, handler.WithRecorder(metrics.NewPrometheusRecorder(registry)))

		srv := metrics.NewServer(cfg.MetricsAddr, registry)
		errCh, err := srv.Start()
		if err != nil {
			return err
		}

		var cancel context.CancelCauseFunc
		ctx, cancel = watchServeErrors(ctx, errCh)
		defer cancel(nil)

		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(stopCtx); err != nil {
				log.Err(err).Msg("failed stopping metrics server")
			}
		}()
	}

	b, err := handler.NewBot(cfg.BotToken, manager, dial, opts...)
	if err != nil {
		return err
	}

	if err := b.Run(ctx); err != nil {
		return err
	}

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	return nil
}

// watchServeErrors cancels the returned context with the first error received
// on errCh, so a failing metrics server stops the bot.
func watchServeErrors(ctx context.Context, errCh <-chan error) (context.Context, context.CancelCauseFunc) {
	ctx, cancel := context.WithCancelCause(ctx)

	go func() {
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				cancel(fmt.Errorf("metrics server failed: %w", err))
			}
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
