package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/cache"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/catalog"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/translate"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/warning"
)

type fakeLister struct {
	alerts []warning.Alert
}

func (f *fakeLister) SpecialWarnings(ctx context.Context, lang string) []warning.Alert {
	return f.alerts
}

type echoProvider struct {
	calls int32
}

func (p *echoProvider) Enabled() bool { return true }

func (p *echoProvider) Translate(ctx context.Context, text, targetLabel string) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	return "translated: " + text, nil
}

func newWarmer(t *testing.T, lister SpecialLister, provider translate.Provider) (*Warmer, *cache.Store) {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	store := cache.Open(filepath.Join(t.TempDir(), "cache.json"))
	resolver := translate.NewResolver(cat, store, provider, observability.NewMetricsForTesting())
	return NewWarmer(lister, resolver, observability.NewMetricsForTesting()), store
}

func TestWarmOnce_PopulatesCache(t *testing.T) {
	lister := &fakeLister{alerts: []warning.Alert{{
		Title:       "大雨特別警報",
		Description: "東京地方に大雨特別警報が発表されています。",
	}}}
	provider := &echoProvider{}
	w, store := newWarmer(t, lister, provider)

	require.NoError(t, w.WarmOnce(context.Background()))

	// Both strings resolve for every non-source locale; the title is a
	// known phrase only via the remote tier here, so entries land in cache.
	targets := len(locale.Supported()) - 1
	assert.Equal(t, 2*targets, store.Len())

	for _, code := range locale.Supported() {
		if code == locale.Source {
			continue
		}
		_, ok := store.Get(cache.Key("大雨特別警報", code))
		assert.True(t, ok, "missing cached title for %s", code)
	}
}

func TestWarmOnce_NoAlerts(t *testing.T) {
	provider := &echoProvider{}
	w, store := newWarmer(t, &fakeLister{}, provider)

	require.NoError(t, w.WarmOnce(context.Background()))
	assert.Equal(t, 0, store.Len())
	assert.EqualValues(t, 0, atomic.LoadInt32(&provider.calls))
}

func TestWarmOnce_SecondRunServedFromCache(t *testing.T) {
	lister := &fakeLister{alerts: []warning.Alert{{
		Title:       "暴風特別警報",
		Description: "伊豆諸島北部に暴風特別警報が発表されています。",
	}}}
	provider := &echoProvider{}
	w, _ := newWarmer(t, lister, provider)

	require.NoError(t, w.WarmOnce(context.Background()))
	first := atomic.LoadInt32(&provider.calls)
	require.NoError(t, w.WarmOnce(context.Background()))

	assert.Equal(t, first, atomic.LoadInt32(&provider.calls))
}

func TestSchedule_RejectsBadExpr(t *testing.T) {
	w, _ := newWarmer(t, &fakeLister{}, &echoProvider{})

	_, err := w.Schedule("not a cron expr")
	assert.Error(t, err)
}

func TestSchedule_StartsAndStops(t *testing.T) {
	w, _ := newWarmer(t, &fakeLister{}, &echoProvider{})

	c, err := w.Schedule("*/15 * * * *")
	require.NoError(t, err)
	<-c.Stop().Done()
}
