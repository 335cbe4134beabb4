package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/j0nas500/statsembed/bot"
	"github.com/j0nas500/statsembed/pkg/config"
	"github.com/j0nas500/statsembed/pkg/discord"
	"github.com/j0nas500/statsembed/pkg/locale"
	"github.com/j0nas500/statsembed/pkg/metrics"
	"github.com/j0nas500/statsembed/pkg/redis"
	"github.com/j0nas500/statsembed/pkg/refresh"
	"github.com/j0nas500/statsembed/pkg/report"
	"github.com/j0nas500/statsembed/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const (
	startupTimeout  = time.Minute
	shutdownTimeout = 10 * time.Second
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Post or adopt the leaderboard message and refresh it until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := config.EnvFromOS()
		logger, closeLog, err := newLogger(env)
		if err != nil {
			return err
		}
		defer closeLog()
		logger.Info("starting", "version", version, "commit", commit)

		if err := run(cmd.Context(), env, logger); err != nil {
			logger.Error("stats leaderboard is disabled", "err", err)
			return err
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the leaderboard once and print the embed JSON without touching Discord",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := config.EnvFromOS()
		env.DisableLogFile = true
		logger, closeLog, err := newLogger(env)
		if err != nil {
			return err
		}
		defer closeLog()
		logger.SetOutput(os.Stderr)
		return preview(cmd.Context(), env, logger)
	},
}

func openStats(ctx context.Context, env config.Env, cfg *config.Config) (*storage.PsqlInterface, *storage.StatsRepository, error) {
	if err := env.RequirePostgres(); err != nil {
		return nil, nil, err
	}
	psql := &storage.PsqlInterface{}
	if err := psql.Init(ctx, storage.ConstructPsqlConnectURL(env.PostgresAddr, env.PostgresUser, env.PostgresPass)); err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return psql, storage.NewStatsRepository(psql.Conn(), cfg.StatsTable, cfg.PlayersTable, cfg.IgnoreSet()), nil
}

func run(parent context.Context, env config.Env, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := env.RequireDiscord(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, startupTimeout)
	defer cancel()

	psql, repo, err := openStats(ctx, env, cfg)
	if err != nil {
		return err
	}
	defer psql.Close()

	loc := locale.LoadTranslations(logger, env.LocalePath, env.BotLang)
	logger.Info("rendering leaderboard", "lang", loc.Lang(), "available", len(loc.Languages()))

	deps := bot.Dependencies{
		Config:    cfg,
		Stats:     repo,
		Localizer: loc,
		Logger:    logger,
	}

	if env.RedisAddr != "" {
		driver := redis.NewDriver(redis.Parameters{Addr: env.RedisAddr, Password: env.RedisPass})
		if err := driver.Ping(ctx); err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer driver.Close()
		deps.Lock = driver.CycleLock(cfg.Channel, logger)
		if cfg.IdentityStore == config.IdentityStoreRedis {
			deps.IdentityStore = driver.IdentityStore(cfg.Channel)
		}
	} else if cfg.IdentityStore == config.IdentityStoreRedis {
		return &config.ConfigurationError{Field: "identityStore", Reason: "redis store selected but no REDIS_ADDR specified"}
	}
	if deps.IdentityStore == nil {
		deps.IdentityStore = config.NewFileIdentityStore(configPath)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewService(registry)
	if err != nil {
		return err
	}
	deps.Recorder = recorder
	server := metrics.NewServer(env.MetricsPort, registry, logger)
	server.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "err", err)
		}
	}()

	session, err := bot.OpenSession(env.DiscordToken, logger)
	if err != nil {
		return err
	}
	defer session.Close()
	deps.Platform = discord.NewSessionPlatform(session)

	b := bot.New(deps)
	if err := b.Start(ctx); err != nil {
		return err
	}
	server.SetReady(true)

	logger.Info("bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info("received shutdown signal")
	server.SetReady(false)
	b.Stop()
	return nil
}

func preview(parent context.Context, env config.Env, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(parent, startupTimeout)
	defer cancel()

	psql, repo, err := openStats(ctx, env, cfg)
	if err != nil {
		return err
	}
	defer psql.Close()

	missing, err := repo.CheckTables(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &config.ConfigurationError{Field: "statsTable/playersTable", Reason: "table(s) not found: " + strings.Join(missing, ", ")}
	}

	data, err := refresh.Collect(ctx, repo, storage.DefaultTopN, time.Now())
	if err != nil {
		return err
	}
	loc := locale.LoadTranslations(logger, env.LocalePath, env.BotLang)
	embed := report.NewRenderer(cfg.Decoration(), loc).Full(data).Embed()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(embed)
}
