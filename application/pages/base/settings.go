package base

import (
	"time"

	"bank_e2e/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL           = "https://www.globalsqa.com/angularJs-protractor/BankingProject/#/"
	DefaultTimeout           = 5 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
)

// Settings is what every page object needs besides its document
type Settings struct {
	BaseURL           string
	Timeout           time.Duration
	NavigationTimeout time.Duration
	Logger            *logrus.Entry
	Dialogs           interfaces.DialogClassifier
}

// withDefaults fills zero fields
func (s Settings) withDefaults() Settings {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.NavigationTimeout <= 0 {
		s.NavigationTimeout = DefaultNavigationTimeout
	}
	if s.Logger == nil {
		s.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return s
}

// CheckOption tunes a single validation
type CheckOption func(*checkOptions)

type checkOptions struct {
	timeout time.Duration
}

// WithTimeout overrides the default polling budget of one check
func WithTimeout(d time.Duration) CheckOption {
	return func(o *checkOptions) {
		o.timeout = d
	}
}

// Timeout resolves the polling budget for a check
func Timeout(def time.Duration, opts []CheckOption) time.Duration {
	o := checkOptions{timeout: def}
	for _, opt := range opts {
		opt(&o)
	}
	return o.timeout
}
