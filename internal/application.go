package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	prefs, closePrefs, err := openPreferences(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closePrefs(); err != nil {
			log.Error("could not close preferences storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, prefs, scheduler.Timer{}, usecase.Settings{
		AIDelay:       conf.Game.AIDelay,
		SoundDebounce: conf.Game.SoundDebounce,
		SessionTTL:    conf.Game.SessionTTL,
	})

	managerDone := make(chan struct{})
	go func() {
		gameManager.Run(ctx)
		close(managerDone)
	}()

	// run HTTP server
	log.Info("Starting HTTP server", "port", conf.HTTPPort, "preferences", conf.Preferences.Backend)
	httpErr := rest.NewServer(logger, gameManager).Start(ctx, conf.HTTPPort)

	cancel()
	<-managerDone

	if httpErr != nil {
		return fmt.Errorf("HTTP server error: %w", httpErr)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// openPreferences connects the configured preferences backend.
func openPreferences(ctx context.Context, conf *config.Config) (repository.PreferenceRepository, func() error, error) {
	switch conf.Preferences.Backend {
	case config.BackendMemory:
		return repository.NewMemoryPreferenceRepository(), func() error { return nil }, nil

	case config.BackendRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewPreferenceRepository(redisStorage.Connection), redisStorage.Close, nil

	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLitePreferenceRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownBackend, conf.Preferences.Backend)
	}
}
