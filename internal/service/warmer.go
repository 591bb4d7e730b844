// Package service hosts the background jobs that run alongside the
// HTTP API. The cache warmer pre-resolves nationwide emergency warning
// text into every locale, so the first resident to open the app during
// an emergency is served from cache instead of waiting on a provider
// round trip.
package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/translate"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/warning"
	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/log"
)

// SpecialLister supplies the nationwide emergency warnings to warm.
type SpecialLister interface {
	SpecialWarnings(ctx context.Context, lang string) []warning.Alert
}

type Warmer struct {
	lister   SpecialLister
	resolver *translate.Resolver
	metrics  *observability.Metrics

	// group collapses overlapping runs: a cron tick that fires while a
	// warm is still in flight joins it instead of doubling the load.
	group singleflight.Group
}

func NewWarmer(lister SpecialLister, resolver *translate.Resolver, metrics *observability.Metrics) *Warmer {
	return &Warmer{
		lister:   lister,
		resolver: resolver,
		metrics:  metrics,
	}
}

// WarmOnce resolves the titles and descriptions of all current
// emergency warnings into every supported locale.
func (w *Warmer) WarmOnce(ctx context.Context) error {
	_, err, _ := w.group.Do("warm", func() (any, error) {
		alerts := w.lister.SpecialWarnings(ctx, locale.Source)
		if len(alerts) == 0 {
			log.Debug("Cache warm: no emergency warnings in force")
			w.metrics.WarmRuns.WithLabelValues("success").Inc()
			return nil, nil
		}

		resolved := 0
		for _, alert := range alerts {
			for _, code := range locale.Supported() {
				if code == locale.Source {
					continue
				}
				w.resolver.Resolve(ctx, alert.Title, code)
				w.resolver.Resolve(ctx, alert.Description, code)
				resolved += 2
			}
			if err := ctx.Err(); err != nil {
				w.metrics.WarmRuns.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("cache warm interrupted: %w", err)
			}
		}

		log.Info("Cache warm: resolved %d strings for %d emergency warnings", resolved, len(alerts))
		w.metrics.WarmRuns.WithLabelValues("success").Inc()
		return nil, nil
	})
	return err
}

// Schedule starts the warmer on the given cron expression and returns
// the scheduler so the caller can stop it on shutdown.
func (w *Warmer) Schedule(expr string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if err := w.WarmOnce(context.Background()); err != nil {
			log.Warn("Scheduled cache warm failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache warmer: %w", err)
	}
	c.Start()
	log.Info("Cache warmer scheduled with %q", expr)
	return c, nil
}
