package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Classifier kinds.
const (
	ClassifierBayes = "bayes"
	ClassifierRules = "rules"
)

// Defaults for the tunable matching thresholds.
const (
	DefaultSearchThreshold = 60
	DefaultNameThreshold   = 90
)

const defaultDataDir = "$HOME/.local/share/rolodex"

// Config is the resolved application configuration.
type Config struct {
	Backend         string
	Classifier      string
	DatabasePath    string
	StorageDir      string
	BackupDir       string
	LogLevel        string
	LogFormat       string
	SearchThreshold int
	NameThreshold   int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.dir", defaultDataDir)
	v.SetDefault("classifier.kind", ClassifierBayes)
	v.SetDefault("search.threshold", DefaultSearchThreshold)
	v.SetDefault("dedupe.name_threshold", DefaultNameThreshold)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load resolves the configuration from v.
// Precedence follows viper: flags, then ROLODEX_ environment variables, then the config file, then defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Backend:         v.GetString("storage.backend"),
		Classifier:      v.GetString("classifier.kind"),
		StorageDir:      ExpandPath(v.GetString("storage.dir")),
		DatabasePath:    ExpandPath(v.GetString("database.path")),
		BackupDir:       ExpandPath(v.GetString("backup.dir")),
		LogLevel:        v.GetString("logging.level"),
		LogFormat:       v.GetString("logging.format"),
		SearchThreshold: v.GetInt("search.threshold"),
		NameThreshold:   v.GetInt("dedupe.name_threshold"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.StorageDir, "rolodex.db")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.StorageDir, "backups")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Backend)
	}

	switch c.Classifier {
	case ClassifierBayes, ClassifierRules:
	default:
		return fmt.Errorf("%w: unknown classifier %q", common.ErrInvalidConfig, c.Classifier)
	}

	if c.SearchThreshold < 0 || c.SearchThreshold > 100 {
		return fmt.Errorf("%w: search.threshold must be between 0 and 100, got %d", common.ErrInvalidConfig, c.SearchThreshold)
	}
	if c.NameThreshold < 0 || c.NameThreshold > 100 {
		return fmt.Errorf("%w: dedupe.name_threshold must be between 0 and 100, got %d", common.ErrInvalidConfig, c.NameThreshold)
	}
	return nil
}
