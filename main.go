// tictactoe serves a browser tic-tac-toe game.
//
// Usage:
//
//	tictactoe serve                      - Start the HTTP server
//	tictactoe serve --config ./prod.yml  - Start with a specific config file
package main

import (
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-web/internal"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
)

var flagConfigPath string

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe in the browser",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := initConfig()
		logger := initLogger(conf)

		if err := app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "./config.yml", "Path to config file")
	rootCmd.AddCommand(serveCmd)
}

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initialize config.
func initConfig() *config.Config {
	return config.MustLoad(flagConfigPath)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if conf.LogFormat == config.FormatText {
		handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			Prefix:          "tictactoe",
			Level:           charmlog.Level(level),
		})

		return slog.New(handler)
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
