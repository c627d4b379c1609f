package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/rolodex/internal/classification"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/config"
	"github.com/Veraticus/rolodex/internal/directory"
	"github.com/Veraticus/rolodex/internal/service"
	"github.com/Veraticus/rolodex/internal/similarity"
	"github.com/Veraticus/rolodex/internal/storage"
)

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the configured backend and prepares it for use.
func initStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	var (
		store service.Storage
		err   error
	)

	switch cfg.Backend {
	case config.BackendJSON:
		store, err = storage.NewJSONStorage(cfg.StorageDir)
	default:
		store, err = storage.NewSQLiteStorage(cfg.DatabasePath)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	common.LogDebug("Opened storage", common.Fields{"backend": cfg.Backend})
	return store, nil
}

// newCategorizer trains the configured categorizer once for this process.
func newCategorizer(cfg *config.Config) (classification.Categorizer, error) {
	bayes := classification.New()
	if cfg.Classifier != config.ClassifierRules {
		return bayes, nil
	}
	return classification.NewRuleCategorizer(classification.DefaultRules(), bayes)
}

// initDirectory wires storage, categorizer and thresholds into a Directory.
// The caller must close the returned storage.
func initDirectory(ctx context.Context) (*directory.Directory, service.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	categorizer, err := newCategorizer(cfg)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	dir := directory.NewWithConfig(store, categorizer, directory.Config{
		Scorer:          similarity.Indel{},
		SearchThreshold: cfg.SearchThreshold,
		NameThreshold:   cfg.NameThreshold,
	})
	return dir, store, nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close storage", nil)
	}
}
