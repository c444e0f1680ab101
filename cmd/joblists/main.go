package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"joblists/internal/config"
	"joblists/internal/crawl/jora"
	"joblists/internal/crawl/seek"
	"joblists/internal/crawl/util"
	"joblists/internal/dispatch"
	"joblists/internal/merge"
	"joblists/internal/store"
)

// Exit codes: 0 = success with data, 1 = no data collected,
// 2 = artifact write failure or startup failure.
const (
	exitOK      = 0
	exitNoData  = 1
	exitFailure = 2
)

func main() {
	cfgPath := flag.String("config", "", "config file path (default: <data_dir>/config.yml)")
	maxPages := flag.Int("max-pages", 0, "pages fetched per portal (overrides config)")
	timeout := flag.Duration("timeout", 0, "per-portal deadline, e.g. 90s (overrides config)")
	output := flag.String("output-path", "", "artifact location (overrides config)")
	flag.Parse()

	os.Exit(run(*cfgPath, *maxPages, *timeout, *output))
}

func run(cfgPath string, maxPages int, timeout time.Duration, output string) int {
	// Data dir: env if provided, else local folder.
	dataDir := os.Getenv("JOBLISTS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Printf("data dir: %v", err)
		return exitFailure
	}

	if cfgPath == "" {
		var err error
		cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Printf("config bootstrap failed: %v", err)
			return exitFailure
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("config load failed (%s): %v", cfgPath, err)
		return exitFailure
	}

	// Flag overrides.
	if maxPages > 0 {
		cfg.Crawl.MaxPages = maxPages
	}
	if output != "" {
		cfg.Output.Path = output
	}

	if err := config.Validate(cfg); err != nil {
		log.Printf("%v", err)
		return exitFailure
	}

	limiter := util.NewHostLimiter(cfg.Crawl.RequestsPerSecond, cfg.Crawl.Burst)

	var tasks []dispatch.Task
	if cfg.Sources.Jora.Enabled {
		j := jora.New(jora.Config{
			BaseURL:  cfg.Sources.Jora.BaseURL,
			Query:    cfg.Search.Query,
			Location: cfg.Search.Location,
		}, limiter)
		tasks = append(tasks, dispatch.Task{Producer: j, Label: j.Name(), MaxPages: cfg.Crawl.MaxPages})
	}
	if cfg.Sources.Seek.Enabled {
		s := seek.New(seek.Config{
			BaseURL:  cfg.Sources.Seek.BaseURL,
			Query:    cfg.Search.Query,
			Location: cfg.Search.Location,
		}, limiter)
		tasks = append(tasks, dispatch.Task{Producer: s, Label: s.Name(), MaxPages: cfg.Crawl.MaxPages})
	}

	log.Printf("collecting %q listings from %d portal(s), %d page(s) each",
		cfg.Search.Query, len(tasks), cfg.Crawl.MaxPages)

	// The flag keeps its full resolution; config only speaks in seconds.
	taskTimeout := time.Duration(cfg.Crawl.TaskTimeoutSeconds) * time.Second
	if timeout > 0 {
		taskTimeout = timeout
	}
	results := dispatch.All(context.Background(), tasks, taskTimeout)

	table, err := merge.Build(results)
	if err != nil {
		if errors.Is(err, merge.ErrNoData) {
			log.Printf("no job data was collected from any portal")
			return exitNoData
		}
		log.Printf("merge failed: %v", err)
		return exitFailure
	}

	if err := merge.WriteCSV(cfg.Output.Path, table); err != nil {
		log.Printf("write artifact: %v", err)
		return exitFailure
	}

	if cfg.Archive.Enabled {
		archive(cfg.Archive.Path, table)
	}

	log.Printf("combined data saved to %s", cfg.Output.Path)
	printSummary(table)
	return exitOK
}

// archive is best-effort; the CSV is the contract artifact.
func archive(path string, table *merge.Table) {
	a, err := store.Open(path)
	if err != nil {
		log.Printf("[archive] open: %v", err)
		return
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	added, err := a.ArchiveAll(ctx, table.Records)
	if err != nil {
		log.Printf("[archive] insert: %v", err)
	}
	log.Printf("[archive] %d new listing(s) archived to %s", added, path)
}

func printSummary(table *merge.Table) {
	counts := table.Summary()

	sources := make([]string, 0, len(counts))
	for s := range counts {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	log.Printf("jobs by source:")
	for _, s := range sources {
		log.Printf("  - %s: %d", s, counts[s])
	}
	log.Printf("total jobs collected: %d", len(table.Records))
}
