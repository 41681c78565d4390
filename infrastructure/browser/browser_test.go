package browser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bank_e2e/domain/entities"
	"bank_e2e/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleXPath(t *testing.T) {
	xpath := roleXPath("button", "Home", true)

	branches := strings.Split(xpath, " | ")
	require.Len(t, branches, 3)
	assert.Equal(t, "//*[@role='button'][normalize-space(.)='Home' or @value='Home' or @aria-label='Home']", branches[0])
	assert.True(t, strings.HasPrefix(branches[1], "//button["))
	assert.True(t, strings.HasPrefix(branches[2], "//input[@type='button' or @type='submit' or @type='reset']["))

	assert.Equal(t, "//*[@role='table'] | //table", roleXPath("table", "", true))

	loose := roleXPath("button", "Login", false)
	assert.Contains(t, loose, "'login'")
	assert.Contains(t, loose, "contains(@value, 'Login')")
}

func TestSeleniumQuery(t *testing.T) {
	tests := []struct {
		name     string
		selector entities.Selector
		by       string
		value    string
	}{
		{"css", entities.ByCSS("#userSelect"), "css selector", "#userSelect"},
		{"row", entities.RowContaining("John", "Doe"), "css selector", "tbody tr"},
		{"xpath", entities.ByXPath("//td"), "xpath", "//td"},
		{"placeholder", entities.ByPlaceholder("First Name"), "xpath", "//*[@placeholder='First Name']"},
		{"text", entities.ByText("Deposit Successful"), "xpath", "//*[text()[contains(normalize-space(.), 'Deposit Successful')]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			by, value := seleniumQuery(tt.selector)
			assert.Equal(t, tt.by, by)
			assert.Equal(t, tt.value, value)
		})
	}

	by, value := seleniumQuery(entities.ByRole("button", "Customer Login"))
	assert.Equal(t, "xpath", by)
	assert.Equal(t, roleXPath("button", "Customer Login", true), value)
}

func TestScopedXPath(t *testing.T) {
	assert.Equal(t, ".//a | .//b", scoped("//a | //b"))
	assert.Equal(t, "./td", scoped("/td"))
	assert.Equal(t, "td", scoped("td"))
	assert.Equal(t, ".//td", relativeXPath("//td"))
}

func TestPollSucceeds(t *testing.T) {
	calls := 0
	state, err := poll(context.Background(), time.Second, func() (bool, string, error) {
		calls++
		return calls == 2, "seen", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "seen", state)
	assert.Equal(t, 2, calls)
}

func TestPollTimesOutWithLastState(t *testing.T) {
	boom := errors.New("stale element")
	state, err := poll(context.Background(), 50*time.Millisecond, func() (bool, string, error) {
		return false, "text \"\"", boom
	})
	assert.ErrorIs(t, err, errPollTimeout)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "text \"\"", state)

	wrapped := pollError(err, entities.ErrStateTimeout, "css=#x", "visible", state)
	assert.ErrorIs(t, wrapped, entities.ErrStateTimeout)
	assert.Contains(t, wrapped.Error(), "css=#x")

	other := errors.New("driver gone")
	assert.Equal(t, other, pollError(other, entities.ErrStateTimeout, "", "", ""))
}

func TestPollStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := poll(ctx, time.Minute, func() (bool, string, error) { return false, "", nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBudget(t *testing.T) {
	assert.Equal(t, 5*time.Second, budget(context.Background(), 5*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	left := budget(ctx, time.Minute)
	assert.LessOrEqual(t, left, time.Second)
	assert.Greater(t, left, time.Duration(0))

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	assert.Equal(t, time.Duration(0), budget(expired, time.Minute))
}

func TestArtifactPaths(t *testing.T) {
	paths := newArtifactPaths("out", "customer/deposit")
	assert.Equal(t, filepath.Join("out", "screenshots", "customer-deposit.png"), paths.screenshot)
	assert.Equal(t, filepath.Join("out", "traces", "customer-deposit.zip"), paths.trace)
	assert.Equal(t, filepath.Join("out", "videos", "customer-deposit"), paths.videoDir)

	unnamed := newArtifactPaths("out", "")
	assert.Contains(t, unnamed.screenshot, "scenario-")
}

func TestJoinCloseErr(t *testing.T) {
	assert.NoError(t, joinCloseErr(nil, "close page", nil))
	assert.NoError(t, joinCloseErr(nil, "close page", errors.New("target closed")))

	first := joinCloseErr(nil, "save trace", errors.New("disk full"))
	assert.EqualError(t, first, "failed to save trace: disk full")

	both := joinCloseErr(first, "close context", errors.New("timeout"))
	assert.EqualError(t, both, "failed to save trace: disk full; failed to close context: timeout")
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "John Doe E12345", normalizeSpace("  John\n\tDoe   E12345 "))
	assert.True(t, containsAll("John Doe E12345 Delete", []string{"John", "E12345"}))
	assert.False(t, containsAll("John Doe", []string{"John", "Smith"}))
	assert.True(t, containsAll("anything", nil))
}

func TestAwaitReturnsCallResult(t *testing.T) {
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	assert.ErrorIs(t, await(context.Background(), func() error { return boom }), boom)
	assert.NoError(t, await(context.Background(), func() error { return nil }))
}

func TestAwaitStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := await(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)

	// already cancelled: the call is never started
	started := false
	assert.ErrorIs(t, await(ctx, func() error { started = true; return nil }), context.Canceled)
	assert.False(t, started)
}

func TestNewFailureReturnsNilBrowser(t *testing.T) {
	for _, path := range []string{"/usr/local/bin/chromedriver", "/usr/bin/chromedriver", "/opt/homebrew/bin/chromedriver"} {
		if _, err := os.Stat(path); err == nil {
			t.Skip("chromedriver is installed at " + path)
		}
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	b, err := New(&config.Config{
		Driver:           config.DriverSelenium,
		ChromeDriverPath: filepath.Join(t.TempDir(), "missing"),
	}, logger)
	require.Error(t, err)
	assert.True(t, b == nil, "failed driver must be a nil interface")

	b, err = New(&config.Config{Driver: "lynx"}, logger)
	require.Error(t, err)
	assert.True(t, b == nil)
}
