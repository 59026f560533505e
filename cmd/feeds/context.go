package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/feed"
	"feeds-app-api/core/interfaces"
	"feeds-app-api/core/reconcile"
	"feeds-app-api/infrastructure/cache/backend"
	"feeds-app-api/infrastructure/kvstore"
	logruslogger "feeds-app-api/infrastructure/logger/logrus"
	"feeds-app-api/pkg/config"
)

const stateLockTimeout = 5 * time.Second

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     interfaces.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := os.Getenv(config.ConfigFileEnv)
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logruslogger.New(logruslogger.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: os.Stderr,
		})
	})
	return c.config, c.configErr
}

// localState is the snapshot file this client owns while a command runs
type localState struct {
	store   *reconcile.SnapshotStore
	tracker *reconcile.Tracker
}

// withState opens the local snapshot under an exclusive file lock
func (c *commandContext) withState(ctx context.Context, fn func(*localState) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	path := cfg.Client.StatePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, stateLockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil || !ok {
		return fmt.Errorf("state file %s is locked by another feeds command", path)
	}
	defer lock.Unlock()

	b, err := backend.Open(backend.TypeSQLite, config.CacheConfig{SQLite: config.SQLiteConfig{Path: path}}, c.logger)
	if err != nil {
		return err
	}
	defer b.Close()

	store := reconcile.NewSnapshotStore(kvstore.New(b.Cache, ""))
	return fn(&localState{store: store, tracker: reconcile.NewTracker(store, nil)})
}

// sources returns the subscribed feeds, or the defaults before the first sync
func (s *localState) sources(ctx context.Context) ([]domain.Source, error) {
	sources, err := s.store.Sources(ctx)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		return feed.DefaultSources(), nil
	}
	return sources, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatMillis(ms *int64) string {
	if ms == nil {
		return "never"
	}
	return time.UnixMilli(*ms).Local().Format(time.RFC3339)
}
