package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"philcali.me/forkify/internal/app"
	"philcali.me/forkify/internal/config"
	"philcali.me/forkify/internal/logger"
)

var (
	logLevel   string
	configPath string

	cfg *config.Config
	log = logger.New(logger.LevelInfo, os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "forkify",
	Short: "Search, show, bookmark and upload forkify recipes",
	Long: `forkify runs the recipe page against the forkify API.

Commands:
  forkify serve            Serve the page and its JSON routes over HTTP
  forkify search <query>   Print a page of search results
  forkify show <id>        Print a recipe, optionally scaled
  forkify bookmark <id>    Toggle the bookmark of a recipe
  forkify export <file>    Write the bookmarks to a spreadsheet`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log") {
			loaded.Logging.Level = logLevel
		}
		level, err := logger.ParseLevel(loaded.Logging.Level)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: off, info, debug")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (defaults to FORKIFY_CONFIG)")
}

// startApp builds the app and runs its loop until the returned stop is
// called.
func startApp(ctx context.Context) (*app.App, func(), error) {
	a, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	done := a.Start(ctx)
	stop := func() {
		cancel()
		<-done
		if err := a.Close(); err != nil {
			log.Warn("failed to close storage: %s", err)
		}
	}
	return a, stop, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
