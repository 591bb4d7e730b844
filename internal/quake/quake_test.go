package quake

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
)

func TestRecent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/history", r.URL.Path)
		assert.Equal(t, "551", r.URL.Query().Get("codes"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`[
			{
				"id": "abc123",
				"earthquake": {
					"time": "2026/08/30 10:15:00",
					"domesticTsunami": "None",
					"maxScale": 45,
					"hypocenter": {
						"name": "石川県能登地方",
						"latitude": 37.5,
						"longitude": 137.2,
						"depth": 10,
						"magnitude": 5.2
					}
				}
			},
			{
				"id": "def456",
				"earthquake": {
					"time": "2026/08/29 23:40:00",
					"domesticTsunami": "Watch",
					"maxScale": 30,
					"hypocenter": {
						"name": "宮城県沖",
						"latitude": 38.3,
						"longitude": 141.9,
						"depth": 50,
						"magnitude": 4.8
					}
				}
			}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewMetricsForTesting())

	quakes, err := c.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, quakes, 2)

	assert.Equal(t, "abc123", quakes[0].ID)
	assert.Equal(t, "石川県能登地方", quakes[0].Location)
	assert.Equal(t, "5弱", quakes[0].MaxIntensity)
	assert.Equal(t, "なし", quakes[0].TsunamiWarning)
	assert.Equal(t, 5.2, quakes[0].Magnitude)
	assert.Equal(t, 10, quakes[0].Depth)
	assert.Equal(t, "気象庁", quakes[0].Source)

	assert.Equal(t, "津波注意報", quakes[1].TsunamiWarning)
	assert.Equal(t, "3", quakes[1].MaxIntensity)
}

func TestRecent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewMetricsForTesting())

	_, err := c.Recent(context.Background(), 5)
	assert.Error(t, err)
}

func TestIntensity(t *testing.T) {
	assert.Equal(t, "1", Intensity(10))
	assert.Equal(t, "5強", Intensity(50))
	assert.Equal(t, "6弱", Intensity(55))
	assert.Equal(t, "7", Intensity(70))
	assert.Equal(t, "不明", Intensity(-1))
	assert.Equal(t, "不明", Intensity(0))
}

func TestTsunamiStatus(t *testing.T) {
	assert.Equal(t, "なし", TsunamiStatus("None"))
	assert.Equal(t, "調査中", TsunamiStatus("Checking"))
	assert.Equal(t, "若干の海面変動", TsunamiStatus("NonEffective"))
	assert.Equal(t, "津波警報", TsunamiStatus("Warning"))
	assert.Equal(t, "不明", TsunamiStatus(""))
	assert.Equal(t, "SomethingNew", TsunamiStatus("SomethingNew"))
}
