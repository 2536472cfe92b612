package app

import (
	"context"

	"tableflip.dev/mellow/pkg/store"
)

// Reload re-reads the collection stored under key, or both when key is
// empty, and publishes the result.
func (c *Controller) Reload(ctx context.Context, key string) error {
	if err := c.store.Reload(ctx, key); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// Watch publishes the collections again whenever w reports a change, until
// ctx is done.
func (c *Controller) Watch(ctx context.Context, w store.Watcher) error {
	return c.store.Follow(ctx, w, c.refresh)
}

func (c *Controller) refresh() {
	c.update(func(s *State) {
		s.Journal = c.store.Journal()
		s.Moods = c.store.Moods()
	})
}
