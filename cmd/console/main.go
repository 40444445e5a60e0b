package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/client/cli"
	"github.com/iudanet/casinoadmin/internal/client/iocli"
	"github.com/iudanet/casinoadmin/internal/client/rpc"
	"github.com/iudanet/casinoadmin/internal/client/session"
	"github.com/iudanet/casinoadmin/internal/client/storage"
	"github.com/iudanet/casinoadmin/internal/client/storage/boltdb"
	"github.com/iudanet/casinoadmin/internal/client/storage/memory"
	"github.com/iudanet/casinoadmin/internal/client/storage/sqlite"
	"github.com/iudanet/casinoadmin/internal/config"
	"github.com/iudanet/casinoadmin/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// localStore - хранилище токенов и transient state одного процесса
type localStore interface {
	storage.KeyValue
	storage.SessionState
	io.Closer
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	authStore := auth.NewStore(store, auth.WithSessionState(store), auth.WithLogger(logger))
	bus := session.NewBus(logger)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	factory := func(domain string, scope auth.Scope, opts ...rpc.Option) (*rpc.Client, error) {
		base := []rpc.Option{
			rpc.WithBaseURL(cfg.ServerURL),
			rpc.WithHTTPClient(httpClient),
			rpc.WithAuthStore(authStore),
			rpc.WithBus(bus),
			rpc.WithLogger(logger),
		}
		if scope == auth.ScopeAdmin {
			base = append(base, rpc.WithBasePath(cfg.AdminBasePath))
			return rpc.NewAdmin(domain, append(base, opts...)...)
		}
		base = append(base, rpc.WithBasePath(cfg.RPCBasePath))
		return rpc.New(domain, append(base, opts...)...)
	}

	console, err := cli.New(cli.Deps{
		IO:      iocli.NewStdio(),
		Store:   authStore,
		Bus:     bus,
		State:   store,
		Clients: factory,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer console.Close()

	if err := console.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", rpc.DisplayMessage(err))
		return 1
	}
	return 0
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (localStore, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		if cfg.StorePassphrase != "" {
			logger.Warn("store passphrase is ignored by the sqlite backend")
		}
		return sqlite.New(ctx, cfg.StorePath)
	case config.StoreMemory:
		return memoryStore{memory.New()}, nil
	default:
		var opts []boltdb.Option
		if cfg.StorePassphrase != "" {
			opts = append(opts, boltdb.WithPassphrase(cfg.StorePassphrase))
		}
		return boltdb.New(ctx, cfg.StorePath, opts...)
	}
}

// memoryStore: сессия живёт до конца процесса
type memoryStore struct {
	*memory.Storage
}

func (memoryStore) Close() error { return nil }

func printVersion() {
	fmt.Printf("Casino Admin Console\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
