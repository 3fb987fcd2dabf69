package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// File is the on-disk site configuration, YAML or JSON.
type File struct {
	DefaultTimeout float64     `json:"default_timeout" yaml:"default_timeout"` // seconds
	Sites          []SiteEntry `json:"sites" yaml:"sites"`
}

// SiteEntry accepts either a bare URL string or a full site object.
type SiteEntry struct {
	URL            string  `json:"url" yaml:"url"`
	Name           string  `json:"name" yaml:"name"`
	Timeout        float64 `json:"timeout" yaml:"timeout"` // seconds
	ExpectedStatus int     `json:"expected_status" yaml:"expected_status"`
}

func (e *SiteEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.URL)
	}
	type plain SiteEntry
	return node.Decode((*plain)(e))
}

func (e *SiteEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.URL)
	}
	type plain SiteEntry
	return json.Unmarshal(data, (*plain)(e))
}

// Load reads a site configuration. Extension picks the format; anything
// that isn't .json is parsed as YAML, which also covers JSON content since
// YAML is a superset.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(f.Sites) == 0 {
		return nil, fmt.Errorf("config %s: no sites configured", path)
	}
	for i, e := range f.Sites {
		if e.URL == "" {
			return nil, fmt.Errorf("config %s: site %d has no url", path, i)
		}
	}
	return &f, nil
}

// Timeout returns the checker-wide default timeout.
func (f *File) Timeout() time.Duration {
	if f.DefaultTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(f.DefaultTimeout * float64(time.Second))
}

// SiteList converts entries to domain sites in file order. Per-site
// timeouts stay zero when unset so the checker default applies.
func (f *File) SiteList() []domain.Site {
	out := make([]domain.Site, 0, len(f.Sites))
	for _, e := range f.Sites {
		out = append(out, domain.Site{
			URL:            e.URL,
			Name:           e.Name,
			Timeout:        time.Duration(e.Timeout * float64(time.Second)),
			ExpectedStatus: e.ExpectedStatus,
		})
	}
	return out
}

// Env holds ambient settings that do not belong in the site file.
type Env struct {
	Addr         string // status API bind address; empty disables the API
	LogDir       string
	MaxChecks    int // concurrent probes per round
	SlackWebhook string
	HistoryFile  string
	KafkaBrokers []string
	KafkaTopic   string
}

func FromEnv() Env {
	addr := os.Getenv("API_ADDR")

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	maxChecks := 8
	if v := os.Getenv("MAX_CONCURRENT_CHECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxChecks = n
		}
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "sitewatch.transitions"
	}

	return Env{
		Addr:         addr,
		LogDir:       logDir,
		MaxChecks:    maxChecks,
		SlackWebhook: os.Getenv("SLACK_WEBHOOK_URL"),
		HistoryFile:  os.Getenv("HISTORY_FILE"),
		KafkaBrokers: brokers,
		KafkaTopic:   topic,
	}
}
