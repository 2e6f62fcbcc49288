package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/blockcraft/internal/assistant"
	"github.com/conneroisu/blockcraft/internal/config"
	"github.com/conneroisu/blockcraft/internal/deploy"
	"github.com/conneroisu/blockcraft/internal/logging"
	"github.com/conneroisu/blockcraft/internal/server"
	"github.com/conneroisu/blockcraft/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the editor API and live canvas preview",
	Long: `Start the editor API and the live canvas preview.

The assistant endpoints are enabled when GEMINI_API_KEY (or
assistant.api_key) is set. Changes to the config file are picked up while
running: the project name and the deployment settings are reloaded.

Examples:
  blockcraft serve                     # Serve on localhost:8080
  blockcraft serve -p 3000             # Serve on another port
  blockcraft serve --history redis     # Keep conversations in Redis`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().String("history", config.HistoryMemory, "Conversation history backend (memory|redis)")
	AddFlagValidation(serveCmd, "port", ValidatePort)

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("assistant.history.backend", serveCmd.Flags().Lookup("history"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history, closeHistory, err := newHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	var provider assistant.Provider
	if cfg.Assistant.APIKey != "" {
		provider = assistant.NewGemini(cfg.Assistant.APIKey, cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.Timeout)
	} else {
		logger.Warn(ctx, nil, "GEMINI_API_KEY is not set, assistant endpoints are disabled")
	}

	srv := server.New(cfg,
		server.WithLogger(logger),
		server.WithAssistant(assistant.NewService(provider, history, logger, assistant.Options{
			HistoryWindow: cfg.Assistant.HistoryWindow,
			MaxImageBytes: cfg.Assistant.Upload.MaxBytes,
			AllowedTypes:  cfg.Assistant.Upload.AllowedTypes,
		})),
		server.WithSimulator(deploy.NewSimulator(
			deploy.WithSuccessRate(cfg.Deploy.SuccessRate),
			deploy.WithTimeScale(cfg.Deploy.TimeScale),
			deploy.WithLogger(logger),
		)),
	)

	if configFileUsed != "" {
		if err := watchConfig(ctx, configFileUsed, srv, logger); err != nil {
			logger.Warn(ctx, err, "Config reload disabled")
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, err, "Error during server shutdown")
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting Blockcraft at http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	return srv.Start(ctx)
}

// newHistory opens the configured conversation store. The returned func
// releases it.
func newHistory(ctx context.Context, cfg *config.Config) (assistant.HistoryStore, func(), error) {
	h := cfg.Assistant.History
	if h.Backend != config.HistoryRedis {
		return assistant.NewMemoryHistory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: h.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", h.RedisAddr, err)
	}
	return assistant.NewRedisHistory(client, h.TTL), func() { _ = client.Close() }, nil
}

// watchConfig reloads the config file into srv whenever it changes.
func watchConfig(ctx context.Context, path string, srv *server.Server, logger logging.Logger) error {
	fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger)
	if err != nil {
		return err
	}
	if err := fw.WatchFile(path); err != nil {
		_ = fw.Stop()
		return err
	}

	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("re-reading %s: %w", path, err)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		srv.ApplyConfig(cfg)
		return nil
	})

	if err := fw.Start(ctx); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = fw.Stop()
	}()
	return nil
}
