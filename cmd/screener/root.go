package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/screener/internal/cli"
	"github.com/aretw0/screener/internal/config"
	"github.com/spf13/cobra"
)

// v carries defaults, environment and bound flags for every command.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Screener runs recruiting screening calls",
	Long: `Screener calls a candidate through a short spoken (or typed) screening:
interest, notice period, compensation and interview availability. Answers
are written back to the candidate record and confirmed interviews are
scheduled as appointments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	sigCtx := cli.NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if err := rootCmd.ExecuteContext(sigCtx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "config file (default ./screener.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("store", "", "record store driver: memory, file, redis or postgres")

	_ = v.BindPFlag("store.driver", rootCmd.PersistentFlags().Lookup("store"))
}

// openApp loads the configuration and opens the record store.
func openApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	return cli.Open(cmd.Context(), cfg)
}

// withApp runs fn with an open App and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, args []string, app *cli.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case cli.FormatTable, cli.FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q, want table or yaml", format)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("output", "o", cli.FormatTable, "output format: table or yaml")
}
