package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "BANK_E2E"
	DefaultBaseURL = "https://www.globalsqa.com/angularJs-protractor/BankingProject/#/"

	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
)

// Viewport is the browser window size
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// ParseViewport parses "WIDTHxHEIGHT"
func ParseViewport(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Viewport{}, fmt.Errorf("invalid viewport %q, want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Viewport{}, fmt.Errorf("invalid viewport width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Viewport{}, fmt.Errorf("invalid viewport height in %q", s)
	}
	return Viewport{Width: width, Height: height}, nil
}

// Config holds everything the suite reads from flags, env and .env
type Config struct {
	BaseURL           string
	Driver            string
	Headless          bool
	SlowMo            time.Duration
	Viewport          Viewport
	Timeout           time.Duration
	NavigationTimeout time.Duration
	Workers           int
	ResultsDir        string
	Trace             bool
	Video             bool
	Screenshots       bool
	DataFile          string
	LogLevel          string
	ChromeDriverPath  string
	ChromeBinary      string
}

// RegisterFlags adds the CLI flags Load understands
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("base-url", DefaultBaseURL, "Application base URL")
	flags.String("driver", DriverPlaywright, "Automation engine: playwright or selenium")
	flags.Bool("headless", true, "Run the browser without a window")
	flags.Duration("slow-mo", 0, "Delay between browser operations")
	flags.String("viewport", "1920x1080", "Viewport size WIDTHxHEIGHT")
	flags.Duration("timeout", 5*time.Second, "Default timeout for checks")
	flags.Duration("navigation-timeout", 30*time.Second, "Timeout for page loads")
	flags.Int("workers", 1, "Scenarios run in parallel, each in its own browser context")
	flags.String("results-dir", "test-results", "Directory for traces, screenshots, videos and the report")
	flags.Bool("trace", true, "Record a trace per scenario (playwright only)")
	flags.Bool("video", false, "Record a video per scenario (playwright only)")
	flags.Bool("screenshots", true, "Capture a screenshot when a scenario fails")
	flags.String("data-file", "", "Test data JSON file; the embedded fixtures are used when empty")
	flags.String("log-level", "info", "Log level")
}

// Load reads .env (optional), BANK_E2E_* variables and flags. Flags set on
// the command line win over the environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env file is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base-url", DefaultBaseURL)
	v.SetDefault("driver", DriverPlaywright)
	v.SetDefault("headless", true)
	v.SetDefault("slow-mo", time.Duration(0))
	v.SetDefault("viewport", "1920x1080")
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("navigation-timeout", 30*time.Second)
	v.SetDefault("workers", 1)
	v.SetDefault("results-dir", "test-results")
	v.SetDefault("trace", true)
	v.SetDefault("video", false)
	v.SetDefault("screenshots", true)
	v.SetDefault("data-file", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("chromedriver-path", "")
	v.SetDefault("chrome-binary", "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	viewport, err := ParseViewport(v.GetString("viewport"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:           v.GetString("base-url"),
		Driver:            strings.ToLower(v.GetString("driver")),
		Headless:          v.GetBool("headless"),
		SlowMo:            v.GetDuration("slow-mo"),
		Viewport:          viewport,
		Timeout:           v.GetDuration("timeout"),
		NavigationTimeout: v.GetDuration("navigation-timeout"),
		Workers:           v.GetInt("workers"),
		ResultsDir:        v.GetString("results-dir"),
		Trace:             v.GetBool("trace"),
		Video:             v.GetBool("video"),
		Screenshots:       v.GetBool("screenshots"),
		DataFile:          v.GetString("data-file"),
		LogLevel:          v.GetString("log-level"),
		ChromeDriverPath:  v.GetString("chromedriver-path"),
		ChromeBinary:      v.GetString("chrome-binary"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is empty")
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	switch c.Driver {
	case DriverPlaywright, DriverSelenium:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.Timeout <= 0 || c.NavigationTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}

// NewLogger builds the suite logger
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}
