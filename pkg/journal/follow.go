package journal

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/mellow/pkg/store"
)

// Follow reloads the collections named by w until ctx is done. changed, when
// set, runs after every successful reload.
func (s *Store) Follow(ctx context.Context, w store.Watcher, changed func()) error {
	keys, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for key := range keys {
			if err := s.Reload(ctx, key); err != nil {
				s.logger.Warn("reload after storage change", zap.String("key", key), zap.Error(err))
				continue
			}
			s.logger.Debug("reloaded after storage change", zap.String("key", key))
			if changed != nil {
				changed()
			}
		}
	}()
	return nil
}
