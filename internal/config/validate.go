package config

import (
	"errors"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Search.Query) == "" {
		errs = append(errs, "search.query is required")
	}
	if cfg.Crawl.MaxPages < 1 {
		errs = append(errs, "crawl.max_pages must be >= 1")
	}
	if cfg.Crawl.RequestsPerSecond <= 0 {
		errs = append(errs, "crawl.requests_per_second must be > 0")
	}
	if cfg.Crawl.Burst < 1 {
		errs = append(errs, "crawl.burst must be >= 1")
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		errs = append(errs, "output.path is required")
	}
	if cfg.Archive.Enabled && strings.TrimSpace(cfg.Archive.Path) == "" {
		errs = append(errs, "archive.path is required when archive.enabled")
	}
	if !cfg.Sources.Jora.Enabled && !cfg.Sources.Seek.Enabled {
		errs = append(errs, "at least one source must be enabled")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
