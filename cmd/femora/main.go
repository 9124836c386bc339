package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/femora/internal/api"
	"github.com/terraincognita07/femora/internal/chat"
	"github.com/terraincognita07/femora/internal/cli"
	"github.com/terraincognita07/femora/internal/config"
	"github.com/terraincognita07/femora/internal/db"
	"github.com/terraincognita07/femora/internal/logger"
	"github.com/terraincognita07/femora/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "femora",
		Short:        "Menstrual cycle and discharge tracking API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCommand(), newResetPasswordCommand(), newReportCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	var prompt bool
	cmd := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Replace a user's password and require a change on next login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.close()

			return cli.RunResetPassword(cmd.Context(), app.auth, args[0], cli.ResetOptions{
				Prompt: prompt,
				Stdin:  os.Stdin,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "ask for the new password instead of generating one")
	return cmd
}

func newReportCommand() *cobra.Command {
	var (
		email   string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print cycle statistics, discharge patterns and insights for one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.SetNoColor(noColor)

			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.close()

			return cli.RunReport(cmd.Context(), cli.ReportSources{
				Users:      app.repositories.Users,
				IsNotFound: isNotFound,
				Cycles:     app.cycles,
				Discharges: app.discharges,
				Insights:   app.insights,
			}, email, time.Now(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to report on")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// application holds the wired components shared by every command.
type application struct {
	cfg          *config.Config
	log          *logger.Logger
	repositories *db.Repositories
	auth         *services.AuthService
	cycles       *services.CycleService
	discharges   *services.DischargeService
	insights     *services.InsightService
	close        func()
}

func bootstrap() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	location := cfg.Location()
	time.Local = location

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	database, err := db.Open(cfg.Database, log.StdLog())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	cycles := services.NewCycleService(repositories.Cycles)
	discharges := services.NewDischargeService(repositories.Discharges)

	return &application{
		cfg:          cfg,
		log:          log,
		repositories: repositories,
		auth:         services.NewAuthService(repositories.Users, isNotFound),
		cycles:       cycles,
		discharges:   discharges,
		insights:     services.NewInsightService(repositories.Cycles, repositories.Discharges, services.NewInsightEngine(services.DefaultInsightConfig())),
		close: func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
			log.Sync()
		},
	}, nil
}

func runServe(ctx context.Context) error {
	app, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.close()

	handler, err := api.NewHandler(api.Dependencies{
		Auth:           app.auth,
		Cycles:         app.cycles,
		Discharges:     app.discharges,
		Insights:       app.insights,
		Chat:           chat.NewClient(app.cfg.Chat, app.log),
		Logger:         app.log,
		SecretKey:      app.cfg.SecretKey,
		Location:       time.Local,
		RequestTimeout: app.cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	server := api.NewApp(handler, app.log)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			app.log.Error("server shutdown failed", "error", err)
		}
	}()

	app.log.Info("femora listening",
		"addr", "0.0.0.0:"+app.cfg.Port,
		"db_driver", app.cfg.Database.Driver,
		"tz", time.Local.String(),
		"chat_enabled", app.cfg.Chat.APIKey != "",
	)
	if err := server.Listen(":" + app.cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
