package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/clock"
	"github.com/kailas-cloud/biosearch/internal/config"
	"github.com/kailas-cloud/biosearch/internal/db"
	dbRedis "github.com/kailas-cloud/biosearch/internal/db/redis"
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	logpkg "github.com/kailas-cloud/biosearch/internal/logger"
	"github.com/kailas-cloud/biosearch/internal/metrics"
	blobrepo "github.com/kailas-cloud/biosearch/internal/repository/blob"
	"github.com/kailas-cloud/biosearch/internal/repository/tagcache"
	"github.com/kailas-cloud/biosearch/internal/transport/azsearch"
	chiTransport "github.com/kailas-cloud/biosearch/internal/transport/chi"
	blobuc "github.com/kailas-cloud/biosearch/internal/usecase/blob"
	healthuc "github.com/kailas-cloud/biosearch/internal/usecase/health"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
	searchuc "github.com/kailas-cloud/biosearch/internal/usecase/search"
	"github.com/kailas-cloud/biosearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting biosearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_endpoint", cfg.Search.Endpoint),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx := context.Background()

	// Optional document store. Without it there is no blob route and no tag count cache.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer redisStore.Close()

		if err := redisStore.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		store = redisStore
		logger.Info("Connected to database")
	}

	// Register gateway metrics explicitly (no init())
	metrics.RegisterGatewayMetrics()

	gateway, err := azsearch.New(azsearch.Config{
		Endpoint:   cfg.Search.Endpoint,
		APIKey:     cfg.Search.APIKey,
		APIVersion: cfg.Search.APIVersion,
		Timeout:    cfg.Search.RequestTimeout(),
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to create search gateway", zap.Error(err))
	}

	compiler, err := facet.NewCompiler(cfg.Search.Forced())
	if err != nil {
		logger.Fatal("Invalid forced facets", zap.Error(err))
	}
	builder := query.NewBuilder(query.Config{
		MaxPageSize:            cfg.Search.MaxPageSize,
		DefaultPageSize:        cfg.Search.DefaultPageSize,
		BiographyDefaultFields: cfg.Search.BiographyDefaultFields,
		StoryDefaultFields:     cfg.Search.StoryDefaultFields,
		HighlightPreTag:        cfg.Search.HighlightPreTag,
		HighlightPostTag:       cfg.Search.HighlightPostTag,
		TagFacetCount:          cfg.Search.TagFacetCount,
		StrictFacets:           cfg.Search.StrictFacets,
		Vocabulary:             cfg.Search.FacetVocabulary(),
	}, compiler, datewindow.NewResolver(clock.System{}))

	// Pass nil interface (not typed nil pointer!) when the cache is not configured.
	var tags searchuc.Searcher
	if store != nil && cfg.Cache.TagCountsTTL() > 0 {
		tags = tagcache.New(gateway, store, cfg.Cache.TagCountsTTL(), metrics.TagCountCacheTotal, logger)
		logger.Info("Tag count cache enabled", zap.Duration("ttl", cfg.Cache.TagCountsTTL()))
	}

	searchSvc := searchuc.New(builder, gateway, tags, searchuc.Indexes{
		Biography: cfg.Search.BiographyIndex,
		Story:     cfg.Search.StoryIndex,
	})

	var blobSvc *blobuc.Service
	var dbPinger healthuc.DBPinger
	if store != nil {
		blobSvc = blobuc.New(blobrepo.New(store), cfg.Blob.Containers)
		dbPinger = store
	}
	healthSvc := healthuc.New(dbPinger, gateway)

	server := chiTransport.NewServer(searchSvc, blobSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context;
			// the search gateway forwards it as client-request-id.
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
