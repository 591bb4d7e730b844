package warning

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/jma"
	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/log"
)

// Fetcher supplies per-prefecture warning reports.
type Fetcher interface {
	Warnings(ctx context.Context, areaCode string) (*jma.WarningReport, error)
}

// Aggregator scans all 47 prefectures for in-force warnings. One slow
// or failing prefecture never blocks the nationwide view; its alerts
// are simply absent from that scan.
type Aggregator struct {
	fetcher     Fetcher
	classifier  *Classifier
	concurrency int
}

func NewAggregator(fetcher Fetcher, classifier *Classifier, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Aggregator{
		fetcher:     fetcher,
		classifier:  classifier,
		concurrency: concurrency,
	}
}

// AllWarnings fetches and classifies warnings for every prefecture,
// returning alerts ordered by area code for a stable nationwide view.
func (a *Aggregator) AllWarnings(ctx context.Context, lang string) []Alert {
	codesByPrefecture := jma.PrefectureCodes()
	areaCodes := make([]string, 0, len(codesByPrefecture))
	prefectures := make(map[string]string, len(codesByPrefecture))
	for name, code := range codesByPrefecture {
		areaCodes = append(areaCodes, code)
		prefectures[code] = name
	}
	sort.Strings(areaCodes)

	var mu sync.Mutex
	byArea := make(map[string][]Alert)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, areaCode := range areaCodes {
		areaCode := areaCode
		g.Go(func() error {
			report, err := a.fetcher.Warnings(ctx, areaCode)
			if err != nil {
				log.Warn("Skipping warnings for %s (%s): %v", prefectures[areaCode], areaCode, err)
				return nil
			}
			alerts := a.classifier.Classify(report, areaCode, lang)
			if len(alerts) == 0 {
				return nil
			}
			mu.Lock()
			byArea[areaCode] = alerts
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var all []Alert
	for _, areaCode := range areaCodes {
		all = append(all, byArea[areaCode]...)
	}
	return all
}

// SpecialWarnings returns only the nationwide emergency warnings.
func (a *Aggregator) SpecialWarnings(ctx context.Context, lang string) []Alert {
	var special []Alert
	for _, alert := range a.AllWarnings(ctx, lang) {
		if alert.Severity == SeverityExtreme {
			special = append(special, alert)
		}
	}
	return special
}
