package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/tempo/internal/classify"
	"github.com/sandeepkv93/tempo/internal/config"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/planner"
	"github.com/sandeepkv93/tempo/internal/service"
	"github.com/sandeepkv93/tempo/internal/storage"
)

// app is everything a subcommand needs once config and storage are open.
type app struct {
	cfg    *config.Config
	repo   *storage.SQLiteRepository
	svc    *service.Service
	logger *log.Logger
	closer io.Closer
}

func (a *app) Close() error {
	err := a.repo.Close()
	if cerr := a.closer.Close(); err == nil {
		err = cerr
	}
	return err
}

// dayClock reports the wall clock shifted onto a fixed calendar date.
type dayClock struct {
	day model.Date
}

func (c dayClock) Now() time.Time {
	now := time.Now()
	d := c.day.Time()
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local)
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	return cfg, nil
}

func clockFor(flags *rootFlags) (service.Clock, error) {
	if flags.today == "" {
		return service.SystemClock{}, nil
	}
	day, err := model.ParseISODate(flags.today)
	if err != nil {
		return nil, fmt.Errorf("--today: %w", err)
	}
	return dayClock{day: day}, nil
}

// openApp loads config, builds the logger writing to logOut (or log_file) and
// opens the task database, creating its directory on first use.
func openApp(flags *rootFlags, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	clock, err := clockFor(flags)
	if err != nil {
		return nil, err
	}
	logger, closer, err := cfg.NewLogger(logOut)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	logger.WithField("db", cfg.DBPath).Debug("task store opened")

	opts := service.Options{
		Focus:     classify.FocusPolicy{IncludeDue: cfg.Focus.IncludeDue},
		Plan:      planner.DefaultPlanOptions(),
		FeedLimit: service.DefaultOptions().FeedLimit,
	}
	opts.Plan.MaxTasks = cfg.Plan.MaxTasks

	return &app{
		cfg:    cfg,
		repo:   repo,
		svc:    service.New(repo, clock, logger, opts),
		logger: logger,
		closer: closer,
	}, nil
}
