// Package main initializes and starts the LocalSites Pro server, setting
// up configuration, logging, the optional contact inbox database,
// services, handlers and, when configured, TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/LocalSites/internal/config"
	"github.com/atinyakov/LocalSites/internal/db"
	"github.com/atinyakov/LocalSites/internal/logger"
	"github.com/atinyakov/LocalSites/internal/repository"
	"github.com/atinyakov/LocalSites/internal/server/handler/http"
	"github.com/atinyakov/LocalSites/internal/service"
	"github.com/atinyakov/LocalSites/web"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const (
	shutdownTimeout = 10 * time.Second
	cleanerInterval = time.Hour
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, zapLogger); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

func run(ctx context.Context, options *config.Options, zapLogger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	// The contact inbox is optional; without a DSN submissions are only logged.
	var contactService *service.ContactService
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer postgresDB.Close()

		done := db.StartInboxCleaner(gctx, postgresDB, cleanerInterval, options.ContactRetention, zapLogger)
		g.Go(func() error {
			<-done
			return nil
		})

		contactService = service.NewContactService(repository.NewPostgresContactRepository(postgresDB), zapLogger)
		zapLogger.Info("contact inbox enabled", zap.Duration("retention", options.ContactRetention))
	} else {
		contactService = service.NewContactService(nil, zapLogger)
	}

	site, err := siteFS(options.StaticDir)
	if err != nil {
		return err
	}

	router := http.NewRouter(http.Handlers{
		Health:    &http.HealthHandler{},
		Templates: &http.TemplateHandler{CatalogService: service.NewCatalogService(repository.NewCatalogRepository(nil))},
		Auth:      &http.AuthHandler{AuthService: service.NewAuthService()},
		Contact:   &http.ContactHandler{ContactService: contactService, Logger: zapLogger},
		Static:    &http.StaticHandler{FS: site},
	}, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if options.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	g.Go(func() error {
		var err error
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
			err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
		} else {
			zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
			err = server.ListenAndServe()
		}
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zapLogger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// siteFS returns the directory to serve the site from, or the embedded
// copy when dir is empty.
func siteFS(dir string) (fs.FS, error) {
	if dir == "" {
		return web.Site(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
