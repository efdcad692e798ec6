package config

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrBaseURLMissing is returned when BASE_URL is not configured
var ErrBaseURLMissing = errors.New("BASE_URL not defined in environment or .env file")

// Environment holds the target application and browser settings for E2E runs
type Environment struct {
	Name        string
	BaseURL     string
	Username    string
	Password    string
	Headless    bool
	SlowMo      int
	Screenshots bool
	Timeout     time.Duration
}

var dotEnvOnce sync.Once

// LoadDotEnv loads simple KEY=VALUE lines from path if present.
// Existing environment variables take precedence and are not overwritten.
func LoadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		val := strings.TrimSpace(line[i+1:])
		if key == "" || val == "" {
			continue
		}
		// Strip optional surrounding quotes
		if len(val) >= 2 && ((val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'')) {
			val = val[1 : len(val)-1]
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}

// GetEnvironment resolves the E2E environment from the process environment and .env
func GetEnvironment() (*Environment, error) {
	dotEnvOnce.Do(func() { LoadDotEnv(".env") })

	baseURL := strings.TrimRight(os.Getenv("BASE_URL"), "/")
	if baseURL == "" {
		return nil, ErrBaseURLMissing
	}

	name := os.Getenv("ENV")
	if name == "" {
		name = "qa"
	}

	slowMo := 0
	if raw := os.Getenv("SLOW_MO"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			slowMo = n
		} else {
			slowMo = 100
		}
	}

	return &Environment{
		Name:        name,
		BaseURL:     baseURL,
		Username:    os.Getenv("APP_USERNAME"),
		Password:    os.Getenv("APP_PASSWORD"),
		Headless:    os.Getenv("HEADLESS") != "false",
		SlowMo:      slowMo,
		Screenshots: os.Getenv("SCREENSHOTS") != "false",
		Timeout:     10 * time.Second,
	}, nil
}

// HasCredentials reports whether both login credentials are configured
func (e *Environment) HasCredentials() bool {
	return e.Username != "" && e.Password != ""
}
