package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/luckyspind/internal/config"
	"github.com/tdex-network/luckyspind/internal/core/application"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/core/ports"
	"github.com/tdex-network/luckyspind/internal/infrastructure/signer"
	dbbadger "github.com/tdex-network/luckyspind/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/luckyspind/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/tdex-network/luckyspind/internal/interfaces/http"
	"github.com/tdex-network/luckyspind/pkg/stats"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx); err != nil {
		log.WithError(err).Fatal("daemon exited with error")
	}
	log.Info("shutdown")
}

func run(ctx context.Context) error {
	datadir := config.GetDatadir()

	repoManager, err := newRepoManager(datadir)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	txSigner, err := newSigner(repoManager)
	if err != nil {
		return err
	}

	ticketPrice, err := config.GetTicketPrice()
	if err != nil {
		return err
	}

	processor, err := application.NewProcessor(txSigner, ticketPrice)
	if err != nil {
		return err
	}

	runtimeSvc, err := application.NewRuntimeService(
		repoManager,
		processor,
		domain.Pubkey(config.GetProgramID()),
		config.GetInt(config.AccountCapacityKey),
	)
	if err != nil {
		return err
	}

	if interval := config.GetInt(config.StatsIntervalKey); interval > 0 {
		dumpPath := filepath.Join(datadir, config.StatsLocation, "metrics")
		stats.EnableMemoryStatistics(
			ctx, time.Duration(interval)*time.Second, dumpPath,
		)
	}

	addr := fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey))
	server := &http.Server{
		Addr: addr,
		Handler: httpinterface.NewRouter(
			runtimeSvc, config.GetInt(config.RateLimitKey),
		),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infof("http interface is listening on %s", addr)
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func newRepoManager(datadir string) (ports.RepoManager, error) {
	switch dbType := config.GetString(config.DBTypeKey); dbType {
	case config.DBInMemory:
		log.Warn("using in-memory storage, state won't survive restarts")
		return inmemory.NewRepoManager(), nil
	default:
		dbDir := filepath.Join(datadir, config.DbLocation)
		return dbbadger.NewRepoManager(dbDir, log.StandardLogger())
	}
}

func newSigner(repoManager ports.RepoManager) (ports.TransactionSigner, error) {
	repo := repoManager.SigningDirectiveRepository()
	switch signerType := config.GetString(config.SignerTypeKey); signerType {
	case config.SignerWebhook:
		return signer.NewWebhookSigner(
			repo,
			config.GetString(config.SignerURLKey),
			config.GetString(config.SignerSecretKey),
			time.Duration(config.GetInt(config.SignerTimeoutKey))*time.Second,
		)
	default:
		return signer.NewQueueSigner(repo)
	}
}
