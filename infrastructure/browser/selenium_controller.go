package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
	"bank_e2e/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const chromeDriverPort = 9515

// dialogGrace - how long a pending dialog handler waits for an alert after a click
const dialogGrace = time.Second

type SeleniumBrowser struct {
	service *selenium.Service
	cfg     *config.Config
	logger  *logrus.Logger
	binary  string
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BANK_E2E_CHROMEDRIVER_PATH")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// NewSeleniumBrowser - starts a ChromeDriver service; sessions are opened per scenario
func NewSeleniumBrowser(cfg *config.Config, logger *logrus.Logger) (*SeleniumBrowser, error) {
	driverPath, err := findChromeDriver(cfg.ChromeDriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}

	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(cfg.ChromeBinary)
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, chromeDriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	return &SeleniumBrowser{
		service: service,
		cfg:     cfg,
		logger:  logger,
		binary:  chromeBinary,
	}, nil
}

// Name - driver name
func (s *SeleniumBrowser) Name() string {
	return config.DriverSelenium
}

// NewSession - opens a new WebDriver session, which gets its own profile
func (s *SeleniumBrowser) NewSession(ctx context.Context, name string) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		fmt.Sprintf("--window-size=%d,%d", s.cfg.Viewport.Width, s.cfg.Viewport.Height),
	}
	if s.cfg.Headless {
		args = append(args, "--headless=new")
	}

	chromeCaps := chrome.Capabilities{
		Args: args,
	}
	if s.binary != "" {
		chromeCaps.Path = s.binary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", chromeDriverPort))
	if err != nil {
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set BANK_E2E_CHROME_BINARY. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	if err := wd.SetPageLoadTimeout(s.cfg.NavigationTimeout); err != nil {
		s.logger.Warnf("Failed to set page load timeout: %v", err)
	}

	return &seleniumSession{
		wd: wd,
		doc: &seleniumDocument{
			wd:                wd,
			timeout:           s.cfg.Timeout,
			navigationTimeout: s.cfg.NavigationTimeout,
			slowMo:            s.cfg.SlowMo,
			logger:            s.logger,
		},
		paths:  newArtifactPaths(s.cfg.ResultsDir, name),
		cfg:    s.cfg,
		logger: s.logger.WithField("scenario", name),
	}, nil
}

// Close - stops ChromeDriver service
func (s *SeleniumBrowser) Close() error {
	if s.service != nil {
		err := s.service.Stop()
		s.service = nil
		return err
	}
	return nil
}

type seleniumSession struct {
	wd     selenium.WebDriver
	doc    *seleniumDocument
	paths  artifactPaths
	cfg    *config.Config
	logger *logrus.Entry
}

func (s *seleniumSession) Document() interfaces.Document {
	return s.doc
}

// Close - screenshots on failure and quits the WebDriver session.
// Traces and videos are playwright features and are not produced here.
func (s *seleniumSession) Close(ctx context.Context, failed bool) (entities.Artifacts, error) {
	var artifacts entities.Artifacts

	if failed && s.cfg.Screenshots {
		if err := s.doc.Screenshot(ctx, s.paths.screenshot); err != nil {
			s.logger.Warnf("Failed to capture screenshot: %v", err)
		} else {
			artifacts.Screenshot = s.paths.screenshot
		}
	}

	return artifacts, joinCloseErr(nil, "quit webdriver", s.wd.Quit())
}

type seleniumDocument struct {
	wd                selenium.WebDriver
	timeout           time.Duration
	navigationTimeout time.Duration
	slowMo            time.Duration
	logger            *logrus.Logger

	mu            sync.Mutex
	dialogHandler func(interfaces.Dialog)
	dialogGen     uint64
}

// Goto - navigates and waits for the document to finish loading
func (d *seleniumDocument) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.logger.Debugf("Navigating to: %s", url)
	if err := await(ctx, func() error { return d.wd.Get(url) }); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	state, err := poll(ctx, d.navigationTimeout, func() (bool, string, error) {
		res, err := d.wd.ExecuteScript("return document.readyState", nil)
		if err != nil {
			return false, "", err
		}
		readyState, _ := res.(string)
		return readyState == "complete", readyState, nil
	})
	if err != nil {
		return pollError(err, entities.ErrNavigationTimeout, url, "document ready", "readyState "+state)
	}
	return nil
}

// WaitForURL - polls the current URL against pattern
func (d *seleniumDocument) WaitForURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	re, err := pattern.Regexp()
	if err != nil {
		return err
	}

	actual, err := poll(ctx, timeout, func() (bool, string, error) {
		current, err := d.wd.CurrentURL()
		if err != nil {
			return false, "", err
		}
		return re.MatchString(current), current, nil
	})
	if err != nil {
		return pollError(err, entities.ErrNavigationTimeout, "url", "url matching "+pattern.String(), actual)
	}
	return nil
}

// URL - returns current page URL
func (d *seleniumDocument) URL() string {
	url, err := d.wd.CurrentURL()
	if err != nil {
		return ""
	}
	return url
}

// Title - returns current page title
func (d *seleniumDocument) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.wd.Title()
}

func (d *seleniumDocument) Locate(selector entities.Selector) interfaces.Element {
	return &seleniumElement{doc: d, selector: selector}
}

// ExpectURL - polls the current URL against pattern
func (d *seleniumDocument) ExpectURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	err := d.WaitForURL(ctx, pattern, timeout)
	if err != nil && errors.Is(err, entities.ErrNavigationTimeout) {
		return entities.Reclassify(err, entities.ErrAssertionFailed, "url")
	}
	return err
}

// ExpectTitle - polls the title
func (d *seleniumDocument) ExpectTitle(ctx context.Context, title string, timeout time.Duration) error {
	actual, err := poll(ctx, timeout, func() (bool, string, error) {
		current, err := d.wd.Title()
		if err != nil {
			return false, "", err
		}
		return current == title, current, nil
	})
	if err != nil {
		return pollError(err, entities.ErrAssertionFailed, "title", fmt.Sprintf("%q", title), fmt.Sprintf("%q", actual))
	}
	return nil
}

// OnceDialog - WebDriver has no dialog events, so the handler is kept until
// the next click raises an alert and is dropped after that one use
func (d *seleniumDocument) OnceDialog(handler func(interfaces.Dialog)) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dialogGen++
	gen := d.dialogGen
	d.dialogHandler = handler
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.dialogGen == gen {
			d.dialogHandler = nil
		}
	}
}

// takeDialogHandler - removes and returns the pending handler
func (d *seleniumDocument) takeDialogHandler() func(interfaces.Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.dialogHandler
	d.dialogHandler = nil
	return h
}

// handlePendingDialog - hands the alert raised by the last gesture to the
// pending handler, if one was registered
func (d *seleniumDocument) handlePendingDialog(ctx context.Context) {
	handler := d.takeDialogHandler()
	if handler == nil {
		return
	}

	text, err := poll(ctx, dialogGrace, func() (bool, string, error) {
		text, err := d.wd.AlertText()
		if err != nil {
			return false, "", err
		}
		return true, text, nil
	})
	if err != nil {
		d.logger.Debugf("No dialog appeared: %v", err)
		return
	}

	handler(&seleniumDialog{wd: d.wd, message: text})
}

// Screenshot - writes a PNG of the current window
func (d *seleniumDocument) Screenshot(ctx context.Context, path string) error {
	data, err := d.wd.Screenshot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

type seleniumDialog struct {
	wd      selenium.WebDriver
	message string
}

// Type - WebDriver cannot tell alert from confirm
func (d *seleniumDialog) Type() string    { return "alert" }
func (d *seleniumDialog) Message() string { return d.message }
func (d *seleniumDialog) Accept() error   { return d.wd.AcceptAlert() }
func (d *seleniumDialog) Dismiss() error  { return d.wd.DismissAlert() }

type seleniumElement struct {
	doc      *seleniumDocument
	parent   *seleniumElement
	selector entities.Selector
}

func (e *seleniumElement) Selector() entities.Selector {
	return e.selector
}

func (e *seleniumElement) Nth(index int) interfaces.Element {
	return &seleniumElement{doc: e.doc, parent: e.parent, selector: e.selector.Nth(index)}
}

func (e *seleniumElement) First() interfaces.Element {
	return &seleniumElement{doc: e.doc, parent: e.parent, selector: e.selector.First()}
}

func (e *seleniumElement) Last() interfaces.Element {
	return &seleniumElement{doc: e.doc, parent: e.parent, selector: e.selector.Last()}
}

func (e *seleniumElement) Within(selector entities.Selector) interfaces.Element {
	return &seleniumElement{doc: e.doc, parent: e, selector: selector}
}

func (e *seleniumElement) String() string {
	if e.parent != nil {
		return e.parent.String() + " >> " + e.selector.String()
	}
	return e.selector.String()
}

// resolve - finds the matching elements right now
func (e *seleniumElement) resolve() ([]selenium.WebElement, error) {
	if err := e.selector.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selector %s: %w", e.selector, err)
	}

	by, value := seleniumQuery(e.selector)

	var found []selenium.WebElement
	if e.parent == nil {
		elements, err := e.doc.wd.FindElements(by, value)
		if err != nil {
			return nil, err
		}
		found = elements
	} else {
		parents, err := e.parent.resolve()
		if err != nil {
			return nil, err
		}
		if by == selenium.ByXPATH {
			value = scoped(value)
		}
		for _, p := range parents {
			elements, err := p.FindElements(by, value)
			if err != nil {
				return nil, err
			}
			found = append(found, elements...)
		}
	}

	if e.selector.Strategy == entities.StrategyRow {
		filtered := found[:0]
		for _, el := range found {
			text, err := el.Text()
			if err != nil {
				return nil, err
			}
			if containsAll(text, e.selector.Contains) {
				filtered = append(filtered, el)
			}
		}
		found = filtered
	}

	switch e.selector.Position {
	case entities.PositionFirst:
		if len(found) > 0 {
			return found[:1], nil
		}
	case entities.PositionLast:
		if len(found) > 0 {
			return found[len(found)-1:], nil
		}
	case entities.PositionNth:
		if e.selector.Index < len(found) {
			return found[e.selector.Index : e.selector.Index+1], nil
		}
		return nil, nil
	}

	return found, nil
}

// single - waits for exactly one displayed match, like playwright's strict locators
func (e *seleniumElement) single(ctx context.Context, timeout time.Duration) (selenium.WebElement, error) {
	var target selenium.WebElement
	actual, err := poll(ctx, timeout, func() (bool, string, error) {
		elements, err := e.resolve()
		if err != nil {
			return false, "", err
		}
		if len(elements) == 0 {
			return false, "no element", nil
		}
		if len(elements) > 1 {
			return false, fmt.Sprintf("%d elements", len(elements)), fmt.Errorf("selector %s is ambiguous", e)
		}
		displayed, err := elements[0].IsDisplayed()
		if err != nil {
			return false, "", err
		}
		if !displayed {
			return false, "hidden", nil
		}
		target = elements[0]
		return true, "visible", nil
	})
	if err != nil {
		return nil, pollError(err, entities.ErrElementNotFound, e.String(), "one visible element", actual)
	}
	return target, nil
}

// Click - clicks the element and feeds a resulting alert to the pending dialog handler
func (e *seleniumElement) Click(ctx context.Context) error {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return err
	}

	e.doc.logger.Debugf("Clicking on: %s", e)
	if err := el.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", e, err)
	}
	e.doc.handlePendingDialog(ctx)
	e.pause()
	return nil
}

// Fill - clears the field and types value
func (e *seleniumElement) Fill(ctx context.Context, value string) error {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return err
	}

	e.doc.logger.Debugf("Filling %s with %q", e, value)
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", e, err)
	}
	if err := el.SendKeys(value); err != nil {
		return fmt.Errorf("failed to type into %s: %w", e, err)
	}
	e.pause()
	return nil
}

// Clear - empties the field
func (e *seleniumElement) Clear(ctx context.Context) error {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", e, err)
	}
	return nil
}

// SelectByLabel - clicks the option whose text equals label
func (e *seleniumElement) SelectByLabel(ctx context.Context, label string) error {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return err
	}

	option, err := el.FindElement(selenium.ByXPATH, fmt.Sprintf(".//option[normalize-space(.)=%s]", entities.XPathLiteral(label)))
	if err != nil {
		return entities.NewCheckError(entities.ErrElementNotFound, e.String(), fmt.Sprintf("option labelled %q", label), "", err)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, e, err)
	}
	e.pause()
	return nil
}

// SelectByIndex - clicks the option at a zero-based index
func (e *seleniumElement) SelectByIndex(ctx context.Context, index int) error {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return err
	}

	options, err := el.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return fmt.Errorf("failed to list options of %s: %w", e, err)
	}
	if index < 0 || index >= len(options) {
		return entities.NewCheckError(entities.ErrElementNotFound, e.String(),
			fmt.Sprintf("option at index %d", index), fmt.Sprintf("%d options", len(options)), nil)
	}
	if err := options[index].Click(); err != nil {
		return fmt.Errorf("failed to select option %d in %s: %w", index, e, err)
	}
	e.pause()
	return nil
}

// WaitVisible - waits until the element is displayed
func (e *seleniumElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if _, err := e.single(ctx, timeout); err != nil {
		return entities.Reclassify(err, entities.ErrStateTimeout, e.String())
	}
	return nil
}

// Text - visible text of the element
func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	el, err := e.single(ctx, e.doc.timeout)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Count - number of nodes currently matching
func (e *seleniumElement) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	elements, err := e.resolve()
	if err != nil {
		return 0, err
	}
	return len(elements), nil
}

// Expect - polls cond against the live DOM
func (e *seleniumElement) Expect(ctx context.Context, cond entities.Condition, timeout time.Duration) error {
	actual, err := poll(ctx, timeout, func() (bool, string, error) {
		elements, err := e.resolve()
		if err != nil {
			return false, "", err
		}
		return evaluate(elements, cond)
	})
	if err != nil {
		return pollError(err, entities.ErrAssertionFailed, e.String(), cond.Expected(), actual)
	}
	return nil
}

func (e *seleniumElement) pause() {
	if e.doc.slowMo > 0 {
		time.Sleep(e.doc.slowMo)
	}
}

// evaluate - checks cond against resolved elements, reporting the observed state
func evaluate(elements []selenium.WebElement, cond entities.Condition) (bool, string, error) {
	if cond.Kind == entities.ConditionCount {
		return len(elements) == cond.Count, fmt.Sprintf("%d element(s)", len(elements)), nil
	}

	if len(elements) == 0 {
		return cond.Kind == entities.ConditionHidden, "no element", nil
	}
	el := elements[0]

	switch cond.Kind {
	case entities.ConditionVisible, entities.ConditionHidden:
		displayed, err := el.IsDisplayed()
		if err != nil {
			return false, "", err
		}
		state := "hidden"
		if displayed {
			state = "visible"
		}
		return displayed == (cond.Kind == entities.ConditionVisible), state, nil
	case entities.ConditionEnabled:
		enabled, err := el.IsEnabled()
		if err != nil {
			return false, "", err
		}
		if enabled {
			return true, "enabled", nil
		}
		return false, "disabled", nil
	}

	text, err := el.Text()
	if err != nil {
		return false, "", err
	}
	text = normalizeSpace(text)
	state := fmt.Sprintf("text %q", text)

	switch cond.Kind {
	case entities.ConditionText:
		return text == normalizeSpace(cond.Text), state, nil
	case entities.ConditionContainsText:
		return strings.Contains(text, normalizeSpace(cond.Text)), state, nil
	case entities.ConditionEmpty:
		return text == "", state, nil
	case entities.ConditionNotEmpty:
		return text != "", state, nil
	default:
		return false, state, fmt.Errorf("unsupported condition %q", cond.Kind)
	}
}

// pollError - turns a poll timeout into the given failure kind
func pollError(err error, kind error, target, expected, actual string) error {
	if errors.Is(err, errPollTimeout) {
		return entities.NewCheckError(kind, target, expected, actual, err)
	}
	return err
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsAll(text string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(text, p) {
			return false
		}
	}
	return true
}

var _ interfaces.Browser = (*SeleniumBrowser)(nil)
