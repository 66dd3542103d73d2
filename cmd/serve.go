package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"notemark/config"
	"notemark/handler"
	"notemark/logger"
	"notemark/repository"
	"notemark/server"
	"notemark/services"
	"notemark/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Configuration is read from the environment and
from a .env file in the working directory when one exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type stores struct {
	users     repository.UserRepository
	notes     repository.NoteStore
	bookmarks repository.BookmarkStore
	close     func(context.Context) error
}

func runServe(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logger.Init(os.Stdout, level, cfg.App.Pretty || pretty); err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "close store", logger.Err(err))
		}
	}()

	tokens, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	if err != nil {
		return fmt.Errorf("init token service: %v", err)
	}
	hasher := services.NewPasswordHasher(services.DefaultArgon2Params)

	resolverOpts := services.ResolverOptions{
		Timeout:   cfg.Metadata.Timeout,
		UserAgent: cfg.Metadata.UserAgent,
		MaxBody:   cfg.Metadata.MaxBody,
	}

	// The health endpoint only reports a cache that was configured.
	var cachePinger handler.Pinger
	if cfg.Redis.URL != "" {
		cache, err := services.NewRedisTitleCache(ctx, cfg.Redis.URL, cfg.Redis.TitleTTL)
		if err != nil {
			logger.Warn(ctx, "title cache disabled", logger.Err(err))
		} else {
			defer cache.Close()
			resolverOpts.Cache = cache
			cachePinger = cache
		}
	}

	router := server.NewRouter(cfg, server.Services{
		Auth:      usecase.NewAuthService(st.users, hasher, tokens),
		Notes:     usecase.NewNotesService(st.notes),
		Bookmarks: usecase.NewBookmarksService(st.bookmarks, services.NewResolver(resolverOpts)),
		Health:    handler.NewHealthHandler(cfg.Store.Driver, cachePinger),
	})

	srv := server.New(cfg.HTTP, router)

	logger.Info(ctx, "starting notemark",
		slog.String("env", cfg.App.Env),
		slog.String("store", cfg.Store.Driver),
		slog.Bool("title_cache", resolverOpts.Cache != nil))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	logger.Info(ctx, "server stopped")
	return nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := repository.ConnectMongo(ctx, repository.MongoConfig{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
			MaxPoolSize:    cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return stores{}, err
		}

		db := client.Database(cfg.Mongo.Database)
		if err := repository.SetupIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return stores{}, err
		}

		logger.Info(ctx, "connected to MongoDB", slog.String("database", cfg.Mongo.Database))
		return stores{
			users:     repository.NewMongoUserRepo(db),
			notes:     repository.NewMongoNoteStore(db),
			bookmarks: repository.NewMongoBookmarkStore(db),
			close:     client.Disconnect,
		}, nil

	default:
		logger.Warn(ctx, "in-memory store: data is lost on restart")
		return stores{
			users:     repository.NewMemoryUserRepo(),
			notes:     repository.NewMemoryNoteStore(),
			bookmarks: repository.NewMemoryBookmarkStore(),
			close:     func(context.Context) error { return nil },
		}, nil
	}
}
