package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/internal/calendar"
	"github.com/username/vacation-tracker-cli/internal/config"
	"github.com/username/vacation-tracker-cli/internal/dashboard"
	"github.com/username/vacation-tracker-cli/internal/session"
	"github.com/username/vacation-tracker-cli/internal/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	cfgErr     error
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vacation-tracker",
		Short: "Vacation Tracker client",
		Long:  "Command-line client for the vacation-tracker backend: request vacations, review the dashboard, and manage approvals",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load once; initializeApp reuses the same config
			cfg, cfgErr = config.Load(configPath)
			if cfgErr == nil && cfg.Log.File != "" {
				var err error
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(requestCmd())
	rootCmd.AddCommand(approveCmd())
	rootCmd.AddCommand(rejectCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(registerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the initialized components behind every command
type app struct {
	cfg       *config.Config
	client    *api.Client
	store     *session.Store
	calendar  *calendar.Calendar
	dashboard *dashboard.Dashboard
}

func initializeApp() (*app, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("failed to load config: %w", cfgErr)
	}
	cfg.ExpandEnvVars()

	client := api.NewClient(cfg.API.Endpoint, cfg.API.GetTimeout(), logger)
	store := session.NewStore(cfg.Session.GetTokenFile(), logger)

	cal, err := buildCalendar(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		client:    client,
		store:     store,
		calendar:  cal,
		dashboard: dashboard.New(client, logger),
	}, nil
}

// buildCalendar picks the holiday source: external file, inline config
// dates, or the built-in defaults
func buildCalendar(cfg *config.Config) (*calendar.Calendar, error) {
	switch {
	case cfg.Holidays.File != "":
		set, err := calendar.LoadHolidaysFile(cfg.Holidays.File, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
		return calendar.New(set), nil

	case len(cfg.Holidays.Dates) > 0:
		set, err := calendar.ParseHolidayDates(cfg.Holidays.Dates, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holidays: %w", err)
		}
		return calendar.New(set), nil

	default:
		logger.Info("Using built-in holiday set")
		return calendar.New(calendar.DefaultHolidays()), nil
	}
}

// newWorkflow wires the refetch contract: every confirmed mutation reloads
// the authoritative list and re-renders the dashboard
func (a *app) newWorkflow(cmd *cobra.Command) *workflow.Workflow {
	return workflow.New(a.client, a.calendar, logger, func() {
		snap, err := a.dashboard.Refresh(cmd.Context())
		if err != nil {
			logger.Warn("Failed to refresh vacation list", zap.Error(err))
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Could not refresh the vacation list; run 'dashboard' to reload.")
			return
		}
		renderSnapshot(cmd, snap)
	})
}

func renderSnapshot(cmd *cobra.Command, snap *dashboard.Snapshot) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n📋 %d pending, %d approved\n", len(snap.Pending), len(snap.Approved))
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
