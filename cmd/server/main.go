package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"invoice-desk/internal/auth"
	"invoice-desk/internal/client"
	"invoice-desk/internal/config"
	"invoice-desk/internal/db"
	"invoice-desk/internal/handler"
	"invoice-desk/internal/invoice"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/numbering"
	"invoice-desk/internal/render"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router, err := newServer(cfg, database)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, router)
}

// newServer builds every repository and service on top of database and
// returns the HTTP handler serving them.
func newServer(cfg *config.Config, database *sql.DB) (http.Handler, error) {
	creds, err := auth.NewCredentials(cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("hash credentials: %w", err)
	}
	if creds.Len() == 0 {
		logger.L().Warn("no login credentials configured; set APP_USERNAME and APP_PASSWORD")
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	authSvc := auth.NewService(creds, tokens)

	clientRepo := client.NewRepository(database)
	clientSvc := client.NewService(clientRepo)

	clock, err := businessClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	invoiceRepo := invoice.NewRepository(database)
	sequencer := numbering.NewSequencer(invoiceRepo, numbering.WithClock(clock))
	renderer := render.NewPDFRenderer(cfg.CompanyName)
	invoiceSvc := invoice.NewService(invoiceRepo, sequencer, clientSvc, renderer, invoice.WithClock(clock))

	h := handler.NewHandler(authSvc, clientSvc, invoiceSvc, cfg.AppEnv == "production")
	h.NumberStats = sequencer.Stats
	return h.Router(cfg.CORSOrigin), nil
}

// businessClock reports the current time in the zone invoices are dated in.
// Invoice numbers and invoice dates both read it.
func businessClock(name string) (func() time.Time, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
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
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
