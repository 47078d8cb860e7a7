// internal/sourcefactory/factory.go
package sourcefactory

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mwiater/mteb/internal/appconfig"
	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
)

// NewSource selects and configures the dataset source named by the
// configuration. When debug is on the source is wrapped to log every load
// with its duration.
func NewSource(cfg *appconfig.Config) (datasets.Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to source factory")
	}

	var src datasets.Source
	switch cfg.Source {
	case appconfig.SourceLocal, "":
		root, err := filepath.Abs(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("resolve data dir %q: %w", cfg.DataDir, err)
		}
		src = datasets.NewLocalSource(root)
		logging.LogEvent("local source ready: %s", root)
	case appconfig.SourceHub:
		src = datasets.NewHubSource(cfg.HubURL, cfg.HubToken, cfg.PageSize, cfg.RequestsPerSecond, cfg.RequestTimeout())
		logging.LogEvent("hub source ready: %s (%.2f req/s)", cfg.HubURL, cfg.RequestsPerSecond)
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", cfg.Source)
	}

	if cfg.Debug {
		src = &timedSource{next: src}
	}
	return src, nil
}

// timedSource logs the duration and size of every load.
type timedSource struct {
	next datasets.Source
}

func (s *timedSource) Load(ctx context.Context, req datasets.Request) (*datasets.Table, error) {
	start := time.Now()
	tbl, err := s.next.Load(ctx, req)
	if err != nil {
		logging.LogDebug("load %s failed after %s: %v", req, time.Since(start), err)
		return nil, err
	}
	logging.LogDebug("load %s: %d rows in %s", req, tbl.Len(), time.Since(start))
	return tbl, nil
}
