package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mimiry/mimiry-go"
	"github.com/mimiry/mimiry-go/internal/config"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"
)

var (
	cfgPath string
	isDebug bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mimiry",
	Short: "Mimiry GPU cloud CLI",
	Long:  `Command-line client for the Mimiry GPU Cloud API: batch jobs, SSH keys, and the instance catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			stylelog.InitDefault()
			return err
		}

		slogLevel := slog.LevelInfo
		if isDebug || cfg.Logging.Level == "debug" {
			slogLevel = slog.LevelDebug
		}
		stylelog.InitDefault(&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// newClient builds an SDK client from the loaded configuration.
func newClient() (*mimiry.Client, error) {
	opts := []mimiry.Option{
		mimiry.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
		mimiry.WithMaxRetries(cfg.API.MaxRetries),
	}
	if cfg.API.BaseURL != "" {
		opts = append(opts, mimiry.WithBaseURL(cfg.API.BaseURL))
	}
	if isDebug || cfg.Logging.Level == "debug" {
		opts = append(opts, mimiry.WithLogger(slog.Default()))
	}
	return mimiry.New(cfg.API.Key, opts...)
}

// commandContext returns a context cancelled on SIGINT/SIGTERM, so long waits
// abort cleanly on Ctrl-C.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
