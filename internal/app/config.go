package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vk/mathlab/internal/nav"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP port used when neither a flag nor the site file
// sets one.
const DefaultPort = 8501

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ContentRoot string // holds activities/ and curriculum/
	SitePath    string // optional mathlab.yaml

	Port   int    // 0 takes the site file's port, then DefaultPort
	Listen string // host:port, overrides Port

	LogFormat  string
	LogLevel   string
	Watch      bool
	SessionTTL time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ContentRoot == "" {
		return nil, errors.New("ContentRoot is a required configuration field and cannot be empty")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d is out of range", cfg.Port)
	}
	if cfg.SessionTTL < 0 {
		return nil, errors.New("session TTL must not be negative")
	}
	return &cfg, nil
}

// Site is the optional site file.
type Site struct {
	Version int `yaml:"version"`
	Site    struct {
		Title string `yaml:"title"`
		Port  int    `yaml:"port"`
	} `yaml:"site"`
	Subjects []nav.Subject `yaml:"subjects"`
}

// DefaultSubjects is the sidebar order used without a site file.
var DefaultSubjects = []nav.Subject{
	{ID: "probability", Label: "확률과 통계"},
	{ID: "calculus", Label: "미적분"},
	{ID: "geometry", Label: "기하"},
	{ID: "common", Label: "공통수학"},
}

// DefaultSite returns the site used when no site file is given.
func DefaultSite() *Site {
	s := &Site{Version: 1, Subjects: DefaultSubjects}
	s.Site.Port = DefaultPort
	return s
}

// LoadSite reads a site file. Missing fields take their defaults.
func LoadSite(path string) (*Site, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var site Site
	if err := yaml.Unmarshal(b, &site); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if site.Version != 1 {
		return nil, fmt.Errorf("unsupported site file version: %d", site.Version)
	}

	seen := map[string]bool{}
	for i, s := range site.Subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("%s: subject %d has no id", path, i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%s: subject %q is listed twice", path, s.ID)
		}
		seen[s.ID] = true
		if s.Label == "" {
			site.Subjects[i].Label = s.ID
		}
	}
	if len(site.Subjects) == 0 {
		site.Subjects = DefaultSubjects
	}
	if site.Site.Port == 0 {
		site.Site.Port = DefaultPort
	}
	return &site, nil
}

// addr returns the listen address.
func (c *Config) addr(site *Site) string {
	if c.Listen != "" {
		return c.Listen
	}
	port := c.Port
	if port == 0 {
		port = site.Site.Port
	}
	return fmt.Sprintf(":%d", port)
}
