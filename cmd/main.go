package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/veiga/killer/internal/adapters/gateway"
	"github.com/veiga/killer/internal/adapters/render"
	service "github.com/veiga/killer/internal/app"
	"github.com/veiga/killer/internal/cli"
	"github.com/veiga/killer/internal/config"
	"github.com/veiga/killer/pkg/logger"
	"github.com/veiga/killer/pkg/metrics"
)

// Metrics server timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "killer",
		Short:         "Companion client for the killer party game",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real config comes from env/file via koanf.
			_ = godotenv.Load()
			return logger.Init()
		},
	}
	root.AddCommand(newPlayCmd(), newLeaderboardCmd(), newInviteCmd())
	return root
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

func buildService(cfg *config.Config) *service.Service {
	var gw gateway.Gateway
	switch cfg.Mode {
	case config.ModeStatic:
		gw = gateway.NewStatic(cfg.StaticDir)
	default:
		gw = gateway.NewClient(cfg.APIBaseURL,
			gateway.WithTimeout(time.Duration(cfg.HTTPTimeoutSec)*time.Second),
		)
	}

	return service.New(
		service.WithGateway(gw),
		service.WithRenderer(render.NewTerminal(os.Stdout)),
		service.WithAdminName(cfg.AdminName),
		service.WithAdminPassword(cfg.AdminPassword),
		service.WithMissionTimeout(cfg.MissionTimeoutSec),
	)
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run the interactive game client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			if cfg.MetricsAddr != "" {
				go serveMetrics(ctx, cfg.MetricsAddr)
			}

			svc := buildService(cfg)
			defer svc.Logout()

			// A dead backend at startup is not fatal; login retries the load.
			if err := svc.Start(ctx); err != nil {
				logger.Get().Warn(ctx, "initial roster load failed", logger.Error(err))
			}

			return cli.New(svc, os.Stdin, os.Stdout).Run(ctx)
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Fetch and print the admin leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			svc := buildService(cfg)
			defer svc.Logout()

			if err := svc.Start(ctx); err != nil {
				return err
			}
			if name == "" {
				name = cfg.AdminName
			}
			if err := svc.Login(ctx, name); err != nil {
				return err
			}
			return svc.Leaderboard(ctx, password)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "admin display name (defaults to the configured admin)")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func newInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite",
		Short: "Print a QR code guests can scan to join the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			target := cfg.GameURL
			if target == "" {
				target = cfg.APIBaseURL
			}
			if target == "" {
				return fmt.Errorf("set game_url (or api_base_url) to generate an invite")
			}

			qr, err := qrcode.New(target, qrcode.Medium)
			if err != nil {
				return fmt.Errorf("generate invite QR: %w", err)
			}
			fmt.Fprintln(os.Stdout, qr.ToSmallString(false))
			fmt.Fprintln(os.Stdout, target)
			return nil
		},
	}
}

// serveMetrics exposes the Prometheus registry until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsReadHeaderTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Get().Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Error(ctx, "metrics server failed", logger.Error(err))
	}
}
