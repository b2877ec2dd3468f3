package content

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"deskfolio/internal/model"
	"deskfolio/internal/store"
)

// DefaultMinSplash keeps the splash screen up long enough to be seen.
const DefaultMinSplash = 1200 * time.Millisecond

// Snapshot is one load result. Err is set when the fetch failed; Content
// then holds the built-in defaults.
type Snapshot struct {
	Content   model.Content
	Locations Locations
	Err       error
}

type Loader struct {
	Source    Source
	MinSplash time.Duration
	Log       *zap.Logger
}

// Load fetches every collection concurrently and returns once both the
// fetch and the minimum splash time are done. Any single failure discards
// the whole fetch.
func (l *Loader) Load(ctx context.Context) Snapshot {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	splash := time.NewTimer(l.MinSplash)
	defer splash.Stop()

	started := time.Now()
	c, err := l.fetch(ctx)
	if err != nil {
		log.Warn("content fetch failed, using defaults", zap.Error(err))
		c = store.DefaultContent()
	} else {
		log.Debug("content fetched",
			zap.Int("projects", len(c.Projects)),
			zap.Int("posts", len(c.BlogPosts)),
			zap.Int("photos", len(c.Gallery)),
			zap.Duration("took", time.Since(started)))
	}

	if l.MinSplash > 0 {
		select {
		case <-splash.C:
		case <-ctx.Done():
		}
	}
	return Snapshot{Content: c, Locations: BuildLocations(c.Projects), Err: err}
}

func (l *Loader) fetch(ctx context.Context) (model.Content, error) {
	var c model.Content
	if l.Source == nil {
		return store.DefaultContent(), nil
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		c.TechStack, err = l.Source.TechStack(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		c.BlogPosts, err = l.Source.BlogPosts(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		c.Gallery, err = l.Source.Gallery(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		c.Socials, err = l.Source.Socials(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		c.Projects, err = l.Source.Projects(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return model.Content{}, err
	}
	return c, nil
}
