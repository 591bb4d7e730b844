// Package quake fetches recent earthquake reports from the P2P
// earthquake information API and maps them onto the agency's intensity
// scale and tsunami vocabulary.
package quake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
)

const DefaultBaseURL = "https://api.p2pquake.net"

// Earthquake is one observed event, still in source-locale terms.
type Earthquake struct {
	ID             string  `json:"id"`
	Time           string  `json:"time"`
	Location       string  `json:"location"`
	Magnitude      float64 `json:"magnitude"`
	MaxIntensity   string  `json:"max_intensity"`
	Depth          int     `json:"depth"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TsunamiWarning string  `json:"tsunami_warning"`
	Source         string  `json:"source"`
}

// intensityScale maps the feed's maxScale values to the agency's
// seismic intensity labels.
var intensityScale = map[int]string{
	10: "1",
	20: "2",
	30: "3",
	40: "4",
	45: "5弱",
	50: "5強",
	55: "6弱",
	60: "6強",
	70: "7",
}

// tsunamiStatus maps the feed's domesticTsunami values to the Japanese
// phrases the translation catalog knows.
var tsunamiStatus = map[string]string{
	"None":         "なし",
	"Unknown":      "不明",
	"Checking":     "調査中",
	"NonEffective": "若干の海面変動",
	"Watch":        "津波注意報",
	"Warning":      "津波警報",
}

// Intensity converts a feed maxScale value to an intensity label.
// Unlisted values, -1 included, mean the intensity is unknown.
func Intensity(maxScale int) string {
	if label, ok := intensityScale[maxScale]; ok {
		return label
	}
	return "不明"
}

// TsunamiStatus converts a feed domesticTsunami value to its Japanese
// phrase, passing unknown values through unchanged.
func TsunamiStatus(domesticTsunami string) string {
	if phrase, ok := tsunamiStatus[domesticTsunami]; ok {
		return phrase
	}
	if domesticTsunami == "" {
		return "不明"
	}
	return domesticTsunami
}

type feedEntry struct {
	ID         string `json:"id"`
	Earthquake struct {
		Time            string `json:"time"`
		DomesticTsunami string `json:"domesticTsunami"`
		MaxScale        int    `json:"maxScale"`
		Hypocenter      struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Depth     int     `json:"depth"`
			Magnitude float64 `json:"magnitude"`
		} `json:"hypocenter"`
	} `json:"earthquake"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}
}

// Recent returns up to limit recent earthquakes, newest first, as the
// feed orders them.
func (c *Client) Recent(ctx context.Context, limit int) ([]Earthquake, error) {
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("%s/v2/history?%s", c.baseURL, url.Values{
		"codes": {"551"},
		"limit": {fmt.Sprintf("%d", limit)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("quake", "error").Inc()
		return nil, fmt.Errorf("fetch quake feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("quake", "error").Inc()
		return nil, fmt.Errorf("quake feed returned status %d", resp.StatusCode)
	}

	var entries []feedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("quake", "error").Inc()
		return nil, fmt.Errorf("decode quake feed: %w", err)
	}
	c.metrics.UpstreamRequests.WithLabelValues("quake", "success").Inc()

	if len(entries) > limit {
		entries = entries[:limit]
	}

	quakes := make([]Earthquake, 0, len(entries))
	for _, entry := range entries {
		hypo := entry.Earthquake.Hypocenter
		quakes = append(quakes, Earthquake{
			ID:             entry.ID,
			Time:           entry.Earthquake.Time,
			Location:       hypo.Name,
			Magnitude:      hypo.Magnitude,
			MaxIntensity:   Intensity(entry.Earthquake.MaxScale),
			Depth:          hypo.Depth,
			Latitude:       hypo.Latitude,
			Longitude:      hypo.Longitude,
			TsunamiWarning: TsunamiStatus(entry.Earthquake.DomesticTsunami),
			Source:         "気象庁",
		})
	}
	return quakes, nil
}
