package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bank_e2e/domain/interfaces"
	"bank_e2e/infrastructure/config"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// New - starts the automation engine selected in cfg
func New(cfg *config.Config, logger *logrus.Logger) (interfaces.Browser, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return NewPlaywrightBrowser(cfg, logger)
	case config.DriverSelenium:
		// a nil *SeleniumBrowser must not become a non-nil interface
		b, err := NewSeleniumBrowser(cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// artifactPaths - file locations for one scenario's diagnostics, keyed by
// the slug of its name
type artifactPaths struct {
	trace      string
	screenshot string
	videoDir   string
}

func newArtifactPaths(resultsDir, scenario string) artifactPaths {
	key := slug.Make(strings.ReplaceAll(scenario, "/", "-"))
	if key == "" {
		key = fmt.Sprintf("scenario-%d", time.Now().UnixNano())
	}
	return artifactPaths{
		trace:      filepath.Join(resultsDir, "traces", key+".zip"),
		screenshot: filepath.Join(resultsDir, "screenshots", key+".png"),
		videoDir:   filepath.Join(resultsDir, "videos", key),
	}
}

// budget - the smaller of d and the time left before ctx's deadline
func budget(ctx context.Context, d time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			if left < 0 {
				return 0
			}
			return left
		}
	}
	return d
}

// isClosedErr - errors from resources that are already gone
func isClosedErr(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

// joinCloseErr - appends err to closeErr the way Close reports several failures
func joinCloseErr(closeErr error, what string, err error) error {
	if err == nil || isClosedErr(err) {
		return closeErr
	}
	if closeErr != nil {
		return fmt.Errorf("%v; failed to %s: %w", closeErr, what, err)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// await - runs a blocking driver call and returns as soon as ctx ends. The
// abandoned call finishes in the background within its own timeout.
func await(ctx context.Context, call func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- call()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
