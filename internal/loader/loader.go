// Package loader fetches the estimate document that backs a dashboard
// session. The fetch happens exactly once per session; every failure mode is
// converted locally into a default snapshot plus a LoadError, so callers
// always receive a renderable Snapshot and never a raw transport error.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

// LoadError describes why the estimate document could not be loaded. It is
// the only error kind the dashboard surfaces to users.
type LoadError struct {
	Message string `json:"message"`
}

func (e *LoadError) Error() string { return e.Message }

// Loader reads a snapshot document from a fixed source, either an http(s)
// URL or a local file path.
type Loader struct {
	source     string
	httpClient *http.Client
}

// New creates a Loader for the given source. timeout bounds the HTTP fetch;
// it is ignored for file sources.
func New(source string, timeout time.Duration) *Loader {
	return &Loader{
		source: source,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load fetches and decodes the snapshot document. On any failure it returns
// the default snapshot along with a LoadError describing what went wrong.
// There are no retries and no caching; calling Load again performs a fresh
// fetch against the same source.
func (l *Loader) Load(ctx context.Context) (models.Snapshot, *LoadError) {
	var (
		snap models.Snapshot
		err  error
	)
	if isHTTP(l.source) {
		snap, err = l.loadHTTP(ctx)
	} else {
		snap, err = l.loadFile()
	}
	if err != nil {
		return models.DefaultSnapshot(), &LoadError{Message: err.Error()}
	}
	return snap, nil
}

func isHTTP(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) loadHTTP(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Snapshot{}, fmt.Errorf("snapshot fetch returned status %d", resp.StatusCode)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

func (l *Loader) loadFile() (models.Snapshot, error) {
	data, err := os.ReadFile(l.source)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
