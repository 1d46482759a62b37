package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Scan       ScanSettings       `toml:"scan"`
	Navigation NavigationSettings `toml:"navigation"`
	Back       BackSettings       `toml:"back"`
	UISettings UISettings         `toml:"ui"`
	LogFile    string             `toml:"log_file"`
}

// ScanSettings controls how a page is searched for focusable elements
type ScanSettings struct {
	FocusableSelector string `toml:"focusable_selector"`
	ContainerSelector string `toml:"container_selector"`
	PrimaryID         string `toml:"primary_id"` // overrides data-primary when set
}

// NavigationSettings tunes the focus engine
type NavigationSettings struct {
	DebounceInterval Duration `toml:"debounce_interval"`
	BackDedupWindow  Duration `toml:"back_dedup_window"`
	Spatial          bool     `toml:"spatial"` // nearest-neighbour moves on data-rect geometry
}

// BackSettings is the page routing table used by the back policy.
// Keys and values are page file names, e.g. "home.html" = "index.html".
type BackSettings struct {
	Routes  map[string]string `toml:"routes"`
	Default string            `toml:"default"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	FocusClass string `toml:"focus_class"`
	Watch      bool   `toml:"watch"`
	ShowHelp   bool   `toml:"show_help"`
}

// Duration is a time.Duration written as "40ms" in TOML
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", string(text))
	}
	d.Duration = v
	return nil
}

// RouteFor returns where back navigation leads from a page
func (b BackSettings) RouteFor(page string) string {
	page = strings.ToLower(filepath.Base(page))
	if target, ok := b.Routes[page]; ok {
		return target
	}
	for key, target := range b.Routes {
		if strings.EqualFold(key, page) {
			return target
		}
	}
	return b.Default
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user's config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "tvnav", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	defaults := cfg.Back.Routes
	cfg.Back.Routes = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// page names match case-insensitively; file routes override defaults
	routes := make(map[string]string, len(defaults)+len(cfg.Back.Routes))
	for page, target := range defaults {
		routes[strings.ToLower(page)] = target
	}
	for page, target := range cfg.Back.Routes {
		routes[strings.ToLower(page)] = target
	}
	cfg.Back.Routes = routes
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks settings the engine cannot work without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scan.FocusableSelector) == "" {
		return fmt.Errorf("invalid config: scan.focusable_selector is empty")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanSettings{
			FocusableSelector: `[data-focusable="true"]`,
			ContainerSelector: `[data-focus-container="true"]`,
		},
		Navigation: NavigationSettings{
			DebounceInterval: Duration{40 * time.Millisecond},
			BackDedupWindow:  Duration{50 * time.Millisecond},
		},
		Back: BackSettings{
			Routes: map[string]string{
				"home.html":         "index.html",
				"login.html":        "home.html",
				"myplan.html":       "home.html",
				"my-plan.html":      "home.html",
				"video-detail.html": "home.html",
			},
			Default: "home.html",
		},
		UISettings: UISettings{
			FocusClass: "is-focused",
			ShowHelp:   true,
		},
		LogFile: "tvnav.log",
	}
}
