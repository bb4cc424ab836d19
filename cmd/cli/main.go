package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/escala/cmd/cli/commands"
	"github.com/jakechorley/escala/internal/config"
	"github.com/jakechorley/escala/internal/storage"
	"github.com/jakechorley/escala/pkg/clients/genaiclient"
	"github.com/jakechorley/escala/pkg/core/advisor"
	"github.com/jakechorley/escala/pkg/core/catalog"
	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/store"
	"github.com/jakechorley/escala/pkg/db"
	"github.com/jakechorley/escala/pkg/utils/logging"
)

var (
	env        string
	configPath string
	envFile    string
	app        = &commands.AppContext{}
	kv         db.KV
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "escala",
		Short: "Escala - children's ministry volunteer schedule",
		Long:  `A CLI tool for managing volunteers, rooms and Saturday service assignments.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if kv != nil {
				if err := kv.Close(); err != nil {
					app.Logger.Warn("Failed to close storage", zap.Error(err))
				}
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to escala_config[.env].yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with secrets such as the advisor API key")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.RoomsCmd(app))
	rootCmd.AddCommand(commands.AddVolunteerCmd(app))
	rootCmd.AddCommand(commands.ListVolunteersCmd(app))
	rootCmd.AddCommand(commands.DeleteVolunteerCmd(app))
	rootCmd.AddCommand(commands.SetActiveCmd(app))
	rootCmd.AddCommand(commands.ToggleCmd(app))
	rootCmd.AddCommand(commands.RemoveAssignmentCmd(app))
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.MonthCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.ReportCmd(app))
	rootCmd.AddCommand(commands.AutoFillCmd(app))
	rootCmd.AddCommand(commands.ManagerModeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, storage, store and advisor
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Load configuration
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, app.Cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("environment", env))

	if err := config.LoadSecrets(envFile); err != nil {
		return err
	}

	// Room catalog
	cat := catalog.Default()
	if len(app.Cfg.Rooms) > 0 {
		cat, err = catalog.New(app.Cfg.Rooms)
		if err != nil {
			return fmt.Errorf("failed to build room catalog: %w", err)
		}
	}
	app.Logger.Debug("Room catalog ready", zap.Int("rooms", len(cat.Rooms())), zap.Int("slots", cat.TotalCapacity()))

	app.Calendar, err = schedule.NewServiceCalendar(app.Cfg.ServiceRule)
	if err != nil {
		return err
	}

	// Open storage and load state
	kv, err = storage.Open(app.Ctx, app.Cfg.Storage, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	app.Store = store.New(kv, cat, app.Logger)
	app.Store.Load(app.Ctx)

	// Advisor
	app.Advisor, err = newAdvisor(app.Ctx, app.Cfg.Advisor, app.Logger)
	if err != nil {
		// Only autoFill needs an advisor
		app.Logger.Warn("Advisor unavailable, autoFill disabled", zap.Error(err))
		app.Advisor = nil
	}

	return nil
}

func newAdvisor(ctx context.Context, cfg config.AdvisorConfig, logger *zap.Logger) (advisor.Advisor, error) {
	switch cfg.Provider {
	case "gemini":
		return genaiclient.NewClient(ctx, cfg.APIKey(), cfg.Model, logger)
	case "greedy":
		return advisor.NewGreedy(logger), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: provider %q", advisor.ErrUnavailable, cfg.Provider)
	}
}
