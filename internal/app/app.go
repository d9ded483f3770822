package app

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"supportbot/internal/api"
	"supportbot/internal/backend"
	"supportbot/internal/config"
	"supportbot/internal/controller"
	"supportbot/internal/database"
	"supportbot/internal/events"
	"supportbot/internal/llm"
	"supportbot/internal/presenter"
	"supportbot/internal/repository"
	"supportbot/internal/service"
)

// RunChat runs an interactive chat session against cfg.BackendURL, reading
// commands from in and rendering to out. It returns when in is exhausted,
// the user quits or ctx is cancelled. Logs go to stderr so they do not mix
// with the conversation.
func RunChat(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	setupLogger(cfg.LogLevel, os.Stderr)
	logConfigSource(cfg)

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	if health, err := client.Health(ctx); err != nil {
		slog.Warn("Backend health check failed", "url", cfg.BackendURL, "error", err)
	} else {
		slog.Info("Backend is reachable", "url", cfg.BackendURL, "status", health.Status)
	}

	term := presenter.NewTerminal(out)
	ctrl := controller.New(client, term, controller.OptionsFromConfig(cfg))
	defer ctrl.Wait()

	if err := ctrl.Initialize(ctx); err != nil {
		return fmt.Errorf("could not start chat session: %w", err)
	}
	term.Message(presenter.Usage)

	bus := events.NewBus()
	stream := bus.Subscribe()
	go readCommands(ctx, in, term, bus)

	err := ctrl.Run(ctx, stream)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readCommands parses each input line and publishes the resulting event,
// waiting for the controller when it falls behind so no line is lost. The
// bus is closed on /quit or end of input, which ends the session.
func readCommands(ctx context.Context, in io.Reader, term *presenter.Terminal, bus *events.Bus) {
	defer bus.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		ev, err := presenter.ParseLine(scanner.Text())
		switch {
		case errors.Is(err, presenter.ErrQuit):
			return
		case errors.Is(err, presenter.ErrHelp):
			term.Message(presenter.Usage)
		case err != nil:
			term.Message(err.Error())
		case ev != nil:
			if err := bus.PublishWait(ctx, ev); err != nil {
				slog.Debug("Stopped reading input", "error", err)
				return
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Failed to read input", "error", err)
	}
}

// Server is the assembled dev backend.
type Server struct {
	DB   *sql.DB
	HTTP *http.Server
}

// NewServer opens the database, registers the providers and builds the HTTP
// server. It does not start listening.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	registry := llm.NewRegistry(llm.EchoProvider{}, llm.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel))
	repo := repository.NewSQLiteRepository(db)

	handler := api.NewHandler(
		service.NewChatService(repo, registry),
		service.NewRatingService(repo),
		service.NewAnalyticsService(repo),
		service.NewProviderService(registry),
	)

	return &Server{
		DB: db,
		HTTP: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
			Handler:           api.NewRouter(handler),
			ReadHeaderTimeout: 20 * time.Second,
			WriteTimeout:      90 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Close releases the database.
func (s *Server) Close() error {
	return s.DB.Close()
}

// RunServe runs the dev backend until ctx is cancelled, then shuts the HTTP
// server down gracefully.
func RunServe(ctx context.Context, cfg *config.Config) error {
	setupLogger(cfg.LogLevel, os.Stdout)
	logConfigSource(cfg)

	if cfg.OllamaURL != "" {
		waitForOllama(ctx, cfg.OllamaURL, 3)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		errCh <- srv.HTTP.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.HTTP.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFile != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFile)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string, w io.Writer) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama checks a few times whether Ollama answers. The server starts
// either way; the echo provider does not need it.
func waitForOllama(ctx context.Context, ollamaURL string, attempts int) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ollamaURL, nil)
		if err != nil {
			slog.Warn("Invalid Ollama URL", "url", ollamaURL, "error", err)
			return false
		}
		resp, err := client.Do(req)
		if err == nil {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in ollama health check", "error", bErr)
			}
			if resp.StatusCode == http.StatusOK {
				slog.Info("Ollama is ready.")
				return true
			}
		}
		slog.Debug("Ollama not ready yet", "url", ollamaURL, "attempt", i+1, "error", err)
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
	}
	slog.Warn("Ollama did not answer; its provider will fail until it does", "url", ollamaURL)
	return false
}
