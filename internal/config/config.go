package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Source struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		Query    string `yaml:"query"`
		Location string `yaml:"location"`
	} `yaml:"search"`

	Crawl struct {
		MaxPages           int     `yaml:"max_pages"`
		TaskTimeoutSeconds int     `yaml:"task_timeout_seconds"`
		RequestsPerSecond  float64 `yaml:"requests_per_second"`
		Burst              int     `yaml:"burst"`
	} `yaml:"crawl"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Archive struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"archive"`

	Sources struct {
		Jora Source `yaml:"jora"`
		Seek Source `yaml:"seek"`
	} `yaml:"sources"`
}

func Default() Config {
	var cfg Config
	cfg.Search.Query = "sponsorship available"
	cfg.Crawl.MaxPages = 1
	cfg.Crawl.TaskTimeoutSeconds = 120
	cfg.Crawl.RequestsPerSecond = 1
	cfg.Crawl.Burst = 2
	cfg.Output.Path = "job_lists.csv"
	cfg.Archive.Path = "joblists.db"
	cfg.Sources.Jora.Enabled = true
	cfg.Sources.Seek.Enabled = true
	return cfg
}

// Load reads path over the defaults, so a partial config file works.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
