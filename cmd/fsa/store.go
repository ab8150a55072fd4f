package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/fsa"
	"github.com/aretw0/fsa/pkg/adapters/bolt"
	"github.com/aretw0/fsa/pkg/adapters/file"
	"github.com/aretw0/fsa/pkg/adapters/memory"
	redisstore "github.com/aretw0/fsa/pkg/adapters/redis"
	"github.com/aretw0/fsa/pkg/ports"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const defaultBoltPath = ".fsa/reports.db"

type storeConfig struct {
	Kind      string
	Path      string
	RedisAddr string
}

func storeConfigFrom(cmd *cobra.Command) storeConfig {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("store-path")
	addr, _ := cmd.Flags().GetString("redis-addr")
	return storeConfig{Kind: kind, Path: path, RedisAddr: addr}
}

// backend is an opened report store plus whatever it needs released.
type backend struct {
	store  ports.ReportStore
	locker ports.DistributedLocker
	close  func() error
}

func openStore(cfg storeConfig, logger *slog.Logger) (*backend, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case "", "memory":
		return &backend{store: memory.NewStore(), close: noop}, nil
	case "file":
		return &backend{store: file.New(cfg.Path), close: noop}, nil
	case "bolt":
		path := cfg.Path
		if path == "" {
			path = defaultBoltPath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		s, err := bolt.Open(path, bolt.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &backend{store: s, close: s.Close}, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return &backend{
			store:  redisstore.NewFromClient(client),
			locker: redisstore.NewLocker(client, "fsa:"),
			close:  client.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q (supported: memory, file, bolt, redis)", cfg.Kind)
	}
}

// options turns the backend into Analyzer options.
func (b *backend) options() []fsa.Option {
	opts := []fsa.Option{fsa.WithStore(b.store)}
	if b.locker != nil {
		opts = append(opts, fsa.WithLocker(b.locker))
	}
	return opts
}

// newAnalyzer wires logger and store flags into an Analyzer. The returned
// function releases the store.
func newAnalyzer(cmd *cobra.Command, extra ...fsa.Option) (*fsa.Analyzer, func() error, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	b, err := openStore(storeConfigFrom(cmd), logger)
	if err != nil {
		return nil, nil, err
	}
	opts := append(b.options(), fsa.WithLogger(logger))
	opts = append(opts, extra...)
	return fsa.New(opts...), b.close, nil
}
