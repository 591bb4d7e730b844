package jma

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

func TestWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warning/data/warning/130000.json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"reportDatetime": "2026-08-30T11:00:00+09:00",
			"areaTypes": [{
				"areas": [{
					"name": "東京地方",
					"code": "130010",
					"warnings": [
						{"code": "03", "status": "発表"},
						{"code": "14", "status": "解除"}
					]
				}]
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewMetricsForTesting())

	report, err := c.Warnings(context.Background(), "130000")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T11:00:00+09:00", report.ReportDatetime)
	require.Len(t, report.AreaTypes, 1)
	require.Len(t, report.AreaTypes[0].Areas, 1)

	area := report.AreaTypes[0].Areas[0]
	assert.Equal(t, "東京地方", area.Name)
	require.Len(t, area.Warnings, 2)
	assert.Equal(t, "03", area.Warnings[0].Code)
	assert.Equal(t, "発表", area.Warnings[0].Status)
}

func TestWarnings_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewMetricsForTesting())

	_, err := c.Warnings(context.Background(), "130000")
	assert.Error(t, err)
}

func TestWeatherOverview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast/data/overview_forecast/130000.json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"publishingOffice": "気象庁",
			"reportDatetime": "2026-08-30T10:38:00+09:00",
			"targetArea": "東京都",
			"headlineText": "",
			"text": "東京地方は、晴れています。"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewMetricsForTesting())

	overview, err := c.WeatherOverview(context.Background(), "130000")
	require.NoError(t, err)
	assert.Equal(t, "東京都", overview.TargetArea)
	assert.Equal(t, "気象庁", overview.PublishingOffice)
	assert.Contains(t, overview.Text, "晴れ")
}

func TestAreaCode(t *testing.T) {
	code, ok := AreaCode("東京都")
	require.True(t, ok)
	assert.Equal(t, "130000", code)

	code, ok = AreaCode("沖縄県")
	require.True(t, ok)
	assert.Equal(t, "471000", code)

	_, ok = AreaCode("江戸")
	assert.False(t, ok)

	assert.Len(t, PrefectureCodes(), 47)
}
