// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/config"
	"github.com/xkilldash9x/spinview/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// flagKeys maps command-line flags onto configuration keys. A flag only
// overrides the file and environment when it is set explicitly.
var flagKeys = map[string]string{
	"debug":       "viewer.debug",
	"tolerance":   "viewer.hotspot_tolerance",
	"concurrency": "preload.concurrency",
	"timeout":     "preload.fetch_timeout",
	"rate":        "preload.rate_limit",
	"frames":      "listing.frames",
	"base-dir":    "listing.base_dir",
}

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "spinview",
		Short:         "spinview shows a vehicle listing with an interactive 360° view.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(cmd, v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			if v.GetBool("viewer.debug") {
				v.Set("logger.level", "debug")
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "spinview"})
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			// The terminal UI owns stdout.
			if cmd.Name() == spinCommandName {
				observability.InitializeForTerminal(cfg.Logger())
			} else {
				observability.InitializeLogger(cfg.Logger())
			}
			observability.GetLogger().Debug("Starting spinview",
				zap.String("version", Version),
				zap.String("config_file", v.ConfigFileUsed()),
			)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, config.Interface(cfg)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./spinview.yaml, then ~/.spinview/spinview.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "log every frame change and enable debug logging")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(
		newSpinCmd(),
		newPreloadCmd(),
		newEstimateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree with ctx and logs any failure.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

// initializeConfig reads the config file and SPINVIEW_* environment variables,
// then binds any mapped flags defined on cmd.
func initializeConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".spinview"))
		}
		v.SetConfigName("spinview")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SPINVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	// Configured hotspots are anchored to the configured frames.
	if f := cmd.Flags().Lookup("frames"); f != nil && f.Changed {
		v.Set("listing.hotspots", []map[string]interface{}{})
	}
	return nil
}

// getConfigFromContext returns the configuration loaded by the root command.
func getConfigFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}
