// Package config loads the application configuration and the role and
// holiday tables the policy and SLA engines are constructed from.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nivaran-io/nivaran-ce/internal/models"
)

// Config is the process configuration. It is an explicitly constructed
// object passed to whoever needs it; there is no package-level singleton,
// so tests can run with alternate tables side by side.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	SLA      SLAConfig      `mapstructure:"sla"`
	Access   AccessConfig   `mapstructure:"access"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// CalendarConfig describes the working window. Hours are IST local hours;
// the end hour is exclusive.
type CalendarConfig struct {
	StartHour    int      `mapstructure:"start_hour"`
	EndHour      int      `mapstructure:"end_hour"`
	Workdays     []string `mapstructure:"workdays"`
	HolidaysFile string   `mapstructure:"holidays_file"`
}

// SLAThreshold holds per-priority SLA budgets in business hours.
type SLAThreshold struct {
	ResponseHours   float64 `mapstructure:"response_hours"`
	ResolutionHours float64 `mapstructure:"resolution_hours"`
	EscalationHours float64 `mapstructure:"escalation_hours"`
}

type SLAConfig struct {
	NearBreachWindowHours float64                 `mapstructure:"near_breach_window_hours"`
	Priorities            map[string]SLAThreshold `mapstructure:"priorities"`
}

type AccessConfig struct {
	RolesFile string `mapstructure:"roles_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "nivaran")
	v.SetDefault("app.env", "development")
	v.SetDefault("calendar.start_hour", 9)
	v.SetDefault("calendar.end_hour", 17)
	v.SetDefault("calendar.workdays", []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"})
	v.SetDefault("sla.near_breach_window_hours", 4)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("NIVARAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from the given YAML file (optional; defaults and
// NIVARAN_* environment variables apply either way).
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Store holds the live configuration with hot reload. On file change the
// config is re-read and swapped atomically; readers always see a complete
// snapshot.
type Store struct {
	mu  sync.RWMutex
	cfg *Config
}

// Watch loads the config file and reloads it on change. onReload, if
// non-nil, runs after each successful swap.
func Watch(path string, onReload func(*Config)) (*Store, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	s := &Store{cfg: &Config{}}
	if err := v.Unmarshal(s.cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fresh := &Config{}
		if err := v.Unmarshal(fresh); err != nil {
			fmt.Fprintf(os.Stderr, "config reload failed for %s: %v\n", e.Name, err)
			return
		}
		s.mu.Lock()
		s.cfg = fresh
		s.mu.Unlock()
		if onReload != nil {
			onReload(fresh)
		}
	})

	return s, nil
}

// Get returns the current configuration snapshot.
func (s *Store) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// LoadRoles reads the role table from a YAML file.
func LoadRoles(path string) ([]models.Role, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles file: %w", err)
	}
	var doc struct {
		Roles []models.Role `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roles file: %w", err)
	}
	return doc.Roles, nil
}

// LoadHolidays reads the holiday list from a YAML file.
func LoadHolidays(path string) ([]models.Holiday, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	var doc struct {
		Holidays []models.Holiday `yaml:"holidays"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse holidays file: %w", err)
	}
	return doc.Holidays, nil
}
