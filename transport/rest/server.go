package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	GetGame(ctx context.Context, sessionID string) usecase.Snapshot
	MakeTurn(ctx context.Context, sessionID string, cell int) usecase.Snapshot
	ResetGame(ctx context.Context, sessionID string) usecase.Snapshot
	ToggleMode(ctx context.Context, sessionID string) usecase.Snapshot
	ToggleMute(ctx context.Context, sessionID string) usecase.Snapshot
}

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func NewServer(logger *slog.Logger, manager gameManager) *Server {
	logger = logger.With("component", "http")

	return &Server{
		logger: logger,
		handlers: &handlers{
			logger:  logger,
			manager: manager,
			tpl:     loadTemplates(),
		},
	}
}

// Handler wires routes and returns an http.Handler.
func (that *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(that.requestLogger)

	r.Get("/", that.handlers.page)
	r.Get("/ping", pingHandler)
	r.Route("/game", func(r chi.Router) {
		r.Get("/board", that.handlers.board)
		r.Post("/cells/{index}", that.handlers.cell)
		r.Post("/reset", that.handlers.reset)
		r.Post("/mode", that.handlers.mode)
		r.Post("/mute", that.handlers.mute)
	})

	return r
}

// Start - serves HTTP until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	}
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
