package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/mellow/pkg/app"
	"tableflip.dev/mellow/pkg/config"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/logging"
	"tableflip.dev/mellow/pkg/store"
)

// session is everything a command needs to reach the entries.
type session struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *journal.Store

	kv       store.KV
	closeLog func() error
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Backend != "" {
		b, err := store.ParseBackend(g.Backend)
		if err != nil {
			return nil, err
		}
		cfg.Store.Backend = b
	}
	if g.Ephemeral {
		cfg.Store.Backend = store.BackendMemory
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	s := &session{Config: cfg, Logger: logger, closeLog: closeLog}

	s.kv, err = store.Open(ctx, cfg.Store)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	s.Store, err = journal.Load(ctx, s.kv, journal.WithLogger(logger))
	if err != nil {
		s.Close()
		return nil, err
	}
	logger.Debug("session opened", zap.String("backend", string(cfg.Store.Backend)))
	return s, nil
}

func (s *session) Close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.Logger.Warn("close store", zap.Error(err))
		}
	}
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

// withSession opens a session for the duration of fn.
func withSession(ctx context.Context, fn func(s *session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// follow keeps the session's collections current with writes from other
// processes when the backend can report them. ctrl, when set, republishes
// its state after each reload. The returned func stops following.
func (s *session) follow(ctx context.Context, ctrl *app.Controller) (stop func()) {
	w, ok := s.kv.(store.Watcher)
	if !ok {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	var err error
	if ctrl != nil {
		err = ctrl.Watch(ctx, w)
	} else {
		err = s.Store.Follow(ctx, w, nil)
	}
	if err != nil {
		s.Logger.Warn("not following outside changes to the store", zap.Error(err))
	}
	return cancel
}
