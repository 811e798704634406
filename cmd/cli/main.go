package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-select/internal/config"
	"github.com/jakechorley/shift-select/internal/httpapi"
	"github.com/jakechorley/shift-select/pkg/core/model"
	"github.com/jakechorley/shift-select/pkg/core/services"
	"github.com/jakechorley/shift-select/pkg/db"
	"github.com/jakechorley/shift-select/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *db.DB
	tokens   db.TokenResolver
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shift-select",
		Short: "Shift Select - weekly shift selection engine",
		Long:  `Serves the employee-facing weekly shift selection API and operator tooling for inspecting computed weeks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(previewWeekCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the token resolver
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Connect to Postgres
	app.logger.Info("Connecting to database")
	app.database, err = db.Open(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.logger.Debug("Database connection established")

	// Token resolution goes through Redis when configured, straight to
	// Postgres otherwise.
	app.tokens = app.database
	if app.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(app.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse redis URL: %w", err)
		}
		ttl := time.Duration(app.cfg.TokenCacheTTLMinutes) * time.Minute
		app.tokens = db.NewTokenCache(app.database, redis.NewClient(opts), ttl, app.logger)
		app.logger.Info("Token cache enabled", zap.Duration("ttl", ttl))
	}

	return nil
}

// Command definitions

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the weekly shift selection API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mux := http.NewServeMux()
			handler := httpapi.NewHandler(app.tokens, app.database, app.logger)
			handler.Register(mux)

			server := &http.Server{
				Addr:              app.cfg.ListenAddr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(app.ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.logger.Info("Listening", zap.String("addr", app.cfg.ListenAddr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
				app.logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown failed: %w", err)
				}
			}

			return nil
		},
	}
}

func previewWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "previewWeek <token>",
		Short: "Compute and display one employee's week for a selection token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]

			result, err := services.GetWeeklyShifts(app.ctx, app.tokens, app.database, app.logger, token)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n📅 Weekly Shift Preview\n\n")
			fmt.Printf("Employee:    %s %s (%s)\n",
				result.TokenData.Employee.FirstName,
				result.TokenData.Employee.LastName,
				result.TokenData.EmployeeID)
			fmt.Printf("Week:        %s — %s\n", result.TokenData.WeekStart, result.TokenData.WeekEnd)
			fmt.Printf("Compatible:  %d\n", result.TotalCompatibleShifts)
			fmt.Printf("Special:     %d\n\n", result.TotalSpecialShifts)

			// ANSI color codes
			const (
				colorReset  = "\033[0m"
				colorGreen  = "\033[32m"
				colorYellow = "\033[33m"
			)

			for day := 0; day < 7; day++ {
				schedule, ok := result.ShiftsByDay[model.DayNames[day]]
				if !ok || len(schedule.Shifts) == 0 {
					continue
				}

				fmt.Printf("%s:\n", schedule.DayName)

				autoSelected := make(map[string]string, len(schedule.AutoSelected))
				for _, selected := range schedule.AutoSelected {
					autoSelected[selected.ID] = selected.Reason
				}
				compatible := make(map[string]bool, len(schedule.CompatibleShifts))
				for _, slot := range schedule.CompatibleShifts {
					compatible[slot.ID] = true
				}
				special := make(map[string]bool, len(schedule.SpecialShifts))
				for _, slot := range schedule.SpecialShifts {
					special[slot.ID] = true
				}

				for _, slot := range schedule.Shifts {
					marker := "  -"
					note := ""
					switch {
					case autoSelected[slot.ID] != "":
						marker = colorGreen + "  ✓" + colorReset
						note = " (" + autoSelected[slot.ID] + ")"
					case compatible[slot.ID]:
						marker = "  ·"
					case special[slot.ID]:
						marker = colorYellow + "  !" + colorReset
						note = " (requires manual selection)"
					}
					fmt.Printf("%s %s-%s  %s @ %s%s\n",
						marker, slot.StartTime, slot.EndTime,
						slot.ShiftType.Label("en"), slot.BranchID, note)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
