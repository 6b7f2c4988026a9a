// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/promob-import/internal/config"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
	LogLevel string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "promob-import",
		Short: "A CLI tool to import Promob and traditional XML budgets.",
		Long: `promob-import reads furniture budgets exported by Promob, or plain
XML order files, and turns them into structured budget documents.

Documents can be previewed, converted to JSON, exported as an items CSV or
saved into the local data directory.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				_ = appContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Check positional indices of imported budgets (overrides import.validate_document)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (overrides configuration)")
}

func setup(cmd *cobra.Command) error {
	config.LoadEnv()
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	ApplyFlags(cmd, cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetContainer(c)
	return nil
}

// ApplyFlags overrides cfg with the persistent flags the user set explicitly.
// Flags left at their defaults keep the configured values.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if flag := cmd.Flag("validate"); flag != nil && flag.Changed {
		cfg.Import.ValidateDocument = SharedFlags.Validate
	}
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	appContainer = c
}

// GetContainer returns the application container built by PersistentPreRunE.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container logger, or a default one before setup.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.NewLogrusAdapter("info", "text")
}
