package diagnostics

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// probeTimeout bounds the catalog reachability check.
const probeTimeout = 5 * time.Second

// probeURL is requested to judge whether the upstream catalog is reachable.
const probeURL = "https://www.youtube.com/generate_204"

// StatusReport describes the bot's runtime health at a point in time.
type StatusReport struct {
	Uptime           time.Duration
	CatalogReachable bool
}

// FormattedUptime renders the uptime as "1d 2h 3m" with zero units omitted.
func (r StatusReport) FormattedUptime() string {
	d := r.Uptime
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// StatusChecker builds status reports.
type StatusChecker struct {
	startedAt time.Time
	probeURL  string
	http      *http.Client
}

// NewStatusChecker creates a StatusChecker anchored at the current time.
func NewStatusChecker() *StatusChecker {
	return &StatusChecker{
		startedAt: time.Now(),
		probeURL:  probeURL,
		http:      &http.Client{Timeout: probeTimeout},
	}
}

// Check returns the current status report.
func (c *StatusChecker) Check(ctx context.Context) StatusReport {
	return StatusReport{
		Uptime:           time.Since(c.startedAt),
		CatalogReachable: c.probeCatalog(ctx),
	}
}

func (c *StatusChecker) probeCatalog(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
