// Package translate implements the tiered translation resolver. Each
// request walks the tiers cheapest-first: identity, static catalog,
// canned phrases, the persistent cache, and finally the remote
// provider. Every tier failure degrades to the next one; when all of
// them miss, the original Japanese text is returned unchanged so a
// notification is never dropped for lack of a translation.
package translate

import (
	"context"
	"time"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/sync/singleflight"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/cache"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/catalog"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/log"
)

// Provider is the remote translation backend. Enabled reports whether
// the backend is configured; a disabled provider makes the resolver
// skip the remote tier entirely.
type Provider interface {
	Enabled() bool
	Translate(ctx context.Context, text, targetLabel string) (string, error)
}

type Resolver struct {
	catalog  *catalog.Catalog
	store    *cache.Store
	provider Provider
	metrics  *observability.Metrics

	// group coalesces concurrent remote calls for the same cache key,
	// so a burst of identical requests costs one provider call.
	group singleflight.Group
}

func NewResolver(cat *catalog.Catalog, store *cache.Store, provider Provider, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		catalog:  cat,
		store:    store,
		provider: provider,
		metrics:  metrics,
	}
}

// Resolve translates text into the locale. It never fails: any tier
// error falls through, and the worst case returns text unchanged.
func (r *Resolver) Resolve(ctx context.Context, text, localeCode string) string {
	if text == "" || localeCode == locale.Source || !locale.IsSupported(localeCode) {
		r.metrics.Resolutions.WithLabelValues("identity").Inc()
		return text
	}

	if translated, ok := r.catalog.Lookup(text, localeCode); ok {
		r.metrics.Resolutions.WithLabelValues("catalog").Inc()
		return translated
	}

	if translated, ok := matchPattern(text, localeCode); ok {
		r.metrics.Resolutions.WithLabelValues("pattern").Inc()
		return translated
	}

	key := cache.Key(text, localeCode)
	if translated, ok := r.store.Get(key); ok {
		r.metrics.Resolutions.WithLabelValues("cache").Inc()
		return translated
	}

	// Already-Latin text is not Japanese feed content; translating it
	// again wastes a provider call.
	if whatlanggo.DetectScript(text) == unicode.Latin {
		r.metrics.Resolutions.WithLabelValues("latin").Inc()
		return text
	}

	if r.provider == nil || !r.provider.Enabled() {
		r.metrics.Resolutions.WithLabelValues("fallback").Inc()
		return text
	}

	translated, err := r.remote(ctx, key, text, localeCode)
	if err != nil {
		log.Warn("Remote translation failed for locale %s: %v", localeCode, err)
		r.metrics.Resolutions.WithLabelValues("fallback").Inc()
		return text
	}
	r.metrics.Resolutions.WithLabelValues("remote").Inc()
	return translated
}

// remote calls the provider through singleflight and writes the result
// through to the persistent cache.
func (r *Resolver) remote(ctx context.Context, key, text, localeCode string) (string, error) {
	result, err, _ := r.group.Do(key, func() (any, error) {
		// A coalesced waiter may arrive after the winner cached.
		if translated, ok := r.store.Get(key); ok {
			return translated, nil
		}

		start := time.Now()
		translated, err := r.provider.Translate(ctx, text, locale.Label(localeCode))
		r.metrics.RemoteDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			r.metrics.RemoteCalls.WithLabelValues("error").Inc()
			return "", err
		}
		r.metrics.RemoteCalls.WithLabelValues("success").Inc()

		r.store.Put(key, translated)
		r.metrics.CacheEntries.Set(float64(r.store.Len()))
		return translated, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
