package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floodFriend/internal/config"
	"floodFriend/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "floodfriend",
		Short:         "Flood response coordination server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("production", false, "require SESSION_SECRET and ADMIN_PASSWORD instead of falling back to development values")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the dotenv file, the configuration and the logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	production, _ := cmd.Flags().GetBool("production")
	var (
		cfg       *config.Config
		defaulted []string
		err       error
	)
	if production {
		cfg, err = config.Load()
	} else {
		cfg, defaulted, err = config.LoadWithDefaults()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	if len(defaulted) > 0 {
		logger.Warn("using development defaults; set these before deploying", zap.Strings("keys", defaulted))
	}
	logger.Info("configuration loaded", zap.Stringer("config", cfg))
	return cfg, logger, nil
}
