package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/rcmn/internal/config"
	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/alexiusacademia/rcmn/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags
	rootUnits    string
	rootLogLevel string
	rootEnvFile  string

	// cfg is loaded before every subcommand runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rcmn",
	Short: "Flexural capacity of reinforced concrete beams",
	Long: `rcmn - Reinforced Concrete Nominal Moment

A CLI tool for the flexural capacity of rectangular reinforced concrete
beams by the Whitney stress block method.

It computes:
  - Neutral axis and stress block depth
  - Net tensile strain and strength reduction factor φ
  - Nominal (Mn) and design (φMn) moment capacity

for singly and doubly reinforced sections with one or two layers of steel.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   rcmn v%-50s║\n", version.Version)
		fmt.Println("  ║   Reinforced Concrete Nominal Moment                      ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Flexural capacity of rectangular RC beams (Whitney stress block).")
		fmt.Println()
		fmt.Println("  Configurations:")
		fmt.Println("    • singly-1     single layer tension")
		fmt.Println("    • singly-2     two layers tension")
		fmt.Println("    • doubly-1     single layer tension and compression")
		fmt.Println("    • doubly-2t1c  two layers tension, one layer compression")
		fmt.Println("    • doubly-2t2c  two layers tension and compression")
		fmt.Println()
		fmt.Println("  Use 'rcmn --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&rootUnits, "units", "", "Unit system: us or si (default from RCMN_UNITS, else us)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootEnvFile, "env-file", "", "Read settings from this file instead of .env")
}

// loadConfig reads the environment, applies flag overrides and installs the
// default logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	var files []string
	if rootEnvFile != "" {
		files = append(files, rootEnvFile)
	}

	var err error
	if cfg, err = config.Load(files...); err != nil {
		return err
	}
	if rootUnits != "" {
		if cfg.Units, err = units.ParseSystem(rootUnits); err != nil {
			return err
		}
	}
	if rootLogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(rootLogLevel)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return nil
}
