package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	cfg  *Switches
	once sync.Once
	mu   sync.RWMutex
)

// Attach modes for per-message log attachments
const (
	AttachImmediate = "immediate"
	AttachBuffer    = "buffer"
	AttachErrorOnly = "error-only"
)

// Switches holds the policy values consumed by the logger, recorder and finalizer
type Switches struct {
	// AttachLogs controls which log levels are attached one by one to the report
	AttachLogs string `mapstructure:"attach_logs" yaml:"attach_logs"`
	// GenerateReport enables the end-of-test API capture report; failure details are attached regardless
	GenerateReport bool `mapstructure:"generate_report" yaml:"generate_report"`
	// AllureReportGenerate enables the API log attachment (the file is persisted regardless)
	AllureReportGenerate bool `mapstructure:"allure_report_generate" yaml:"allure_report_generate"`
	// IncludePassLogs keeps full API logs for passed tests
	IncludePassLogs bool          `mapstructure:"include_pass_logs" yaml:"include_pass_logs"`
	ResultsDir      string        `mapstructure:"results_dir" yaml:"results_dir"`
	BodyReadTimeout time.Duration `mapstructure:"body_read_timeout" yaml:"body_read_timeout"`
}

// Default returns the switches used when no configuration file is present
func Default() Switches {
	return Switches{
		AttachLogs:           AttachImmediate,
		GenerateReport:       true,
		AllureReportGenerate: true,
		IncludePassLogs:      false,
		ResultsDir:           "test-results",
		BodyReadTimeout:      5 * time.Second,
	}
}

// NormalizedAttachMode lower-cases the attach mode and falls back to immediate when unset
func (s Switches) NormalizedAttachMode() string {
	mode := strings.ToLower(strings.TrimSpace(s.AttachLogs))
	if mode == "" {
		return AttachImmediate
	}
	return mode
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault("attach_logs", d.AttachLogs)
	v.SetDefault("generate_report", d.GenerateReport)
	v.SetDefault("allure_report_generate", d.AllureReportGenerate)
	v.SetDefault("include_pass_logs", d.IncludePassLogs)
	v.SetDefault("results_dir", d.ResultsDir)
	v.SetDefault("body_read_timeout", d.BodyReadTimeout)

	// Environment variable overrides
	v.SetEnvPrefix("HOTELSUITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads killswitch.yaml from configPath (optional) with hot reload support
func Load(configPath string) error {
	var err error
	once.Do(func() {
		v := newViper()
		v.SetConfigName("killswitch")
		v.AddConfigPath(configPath)

		watch := true
		if err = v.ReadInConfig(); err != nil {
			// Running on defaults and environment is fine
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("failed to read switches: %w", err)
				return
			}
			err = nil
			watch = false
		}

		loaded := &Switches{}
		if err = v.Unmarshal(loaded); err != nil {
			err = fmt.Errorf("failed to unmarshal switches: %w", err)
			return
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()

		if !watch {
			return
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("[config] switches file changed: %s", e.Name)
			next := &Switches{}
			if err := v.Unmarshal(next); err != nil {
				log.Printf("[config] failed to reload switches: %v", err)
				return
			}

			// Atomic swap
			mu.Lock()
			cfg = next
			mu.Unlock()
		})
		v.WatchConfig()
	})

	return err
}

// LoadFromFile loads switches from a specific file (useful for testing)
func LoadFromFile(configFile string) error {
	v := newViper()
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read switches file: %w", err)
	}

	loaded := &Switches{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("failed to unmarshal switches: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	cfg = loaded
	return nil
}

// Get returns a copy of the current switches, or the defaults when nothing was loaded
func Get() Switches {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return *cfg
}

// Set replaces the current switches
func Set(s Switches) {
	mu.Lock()
	defer mu.Unlock()
	cfg = &s
}

// MustLoad loads switches and panics on error
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		panic(fmt.Sprintf("Failed to load switches: %v", err))
	}
}
