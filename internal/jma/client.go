// Package jma fetches public feeds from the Japan Meteorological Agency:
// per-prefecture warning reports and the prose weather overview. The
// client only fetches and decodes; interpreting warning codes is the
// warning package's job.
package jma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
)

const DefaultBaseURL = "https://www.jma.go.jp/bosai"

// WarningReport is the decoded per-prefecture warning feed.
type WarningReport struct {
	ReportDatetime string     `json:"reportDatetime"`
	AreaTypes      []AreaType `json:"areaTypes"`
}

type AreaType struct {
	Areas []Area `json:"areas"`
}

type Area struct {
	Name     string        `json:"name"`
	Code     string        `json:"code"`
	Warnings []WarningItem `json:"warnings"`
}

type WarningItem struct {
	Code   string `json:"code"`
	Status string `json:"status"`
}

// Overview is the prose weather overview for one prefecture.
type Overview struct {
	PublishingOffice string `json:"publishingOffice"`
	ReportDatetime   string `json:"reportDatetime"`
	TargetArea       string `json:"targetArea"`
	HeadlineText     string `json:"headlineText"`
	Text             string `json:"text"`
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

// Warnings fetches the warning report for one prefecture area code.
func (c *Client) Warnings(ctx context.Context, areaCode string) (*WarningReport, error) {
	var report WarningReport
	url := fmt.Sprintf("%s/warning/data/warning/%s.json", c.baseURL, areaCode)
	if err := c.getJSON(ctx, "warning", url, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// WeatherOverview fetches the prose forecast overview for one prefecture.
func (c *Client) WeatherOverview(ctx context.Context, areaCode string) (*Overview, error) {
	var overview Overview
	url := fmt.Sprintf("%s/forecast/data/overview_forecast/%s.json", c.baseURL, areaCode)
	if err := c.getJSON(ctx, "forecast", url, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (c *Client) getJSON(ctx context.Context, feed, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(feed, "error").Inc()
		return fmt.Errorf("fetch %s feed: %w", feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(feed, "error").Inc()
		return fmt.Errorf("%s feed returned status %d", feed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(feed, "error").Inc()
		return fmt.Errorf("decode %s feed: %w", feed, err)
	}

	c.metrics.UpstreamRequests.WithLabelValues(feed, "success").Inc()
	return nil
}
