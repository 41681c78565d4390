package browser

import (
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
	"bank_e2e/infrastructure/config"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.Config
	logger  *logrus.Logger
}

// NewPlaywrightBrowser - starts playwright and launches chromium
func NewPlaywrightBrowser(cfg *config.Config, logger *logrus.Logger) (interfaces.Browser, error) {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-notifications",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"headless": cfg.Headless,
		"slow_mo":  cfg.SlowMo,
		"viewport": cfg.Viewport.String(),
	}).Info("Playwright chromium launched")

	return &playwrightBrowser{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Name - driver name
func (b *playwrightBrowser) Name() string {
	return config.DriverPlaywright
}

// NewSession - opens an isolated context with one page
func (b *playwrightBrowser) NewSession(ctx context.Context, name string) (interfaces.Session, error) {
	paths := newArtifactPaths(b.cfg.ResultsDir, name)

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  b.cfg.Viewport.Width,
			Height: b.cfg.Viewport.Height,
		},
	}
	if b.cfg.Video {
		contextOptions.RecordVideo = &playwright.RecordVideo{
			Dir: paths.videoDir,
			Size: &playwright.Size{
				Width:  b.cfg.Viewport.Width,
				Height: b.cfg.Viewport.Height,
			},
		}
	}

	bctx, err := b.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	if b.cfg.Trace {
		err := bctx.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
			Sources:     playwright.Bool(true),
		})
		if err != nil {
			bctx.Close()
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(b.cfg.NavigationTimeout.Milliseconds()))

	return &playwrightSession{
		context: bctx,
		doc: &playwrightDocument{
			page:              page,
			expect:            playwright.NewPlaywrightAssertions(float64(b.cfg.Timeout.Milliseconds())),
			timeout:           b.cfg.Timeout,
			navigationTimeout: b.cfg.NavigationTimeout,
			logger:            b.logger,
		},
		paths:  paths,
		cfg:    b.cfg,
		logger: b.logger.WithField("scenario", name),
	}, nil
}

// Close - closes the browser and stops playwright
func (b *playwrightBrowser) Close() error {
	var closeErr error

	if b.browser != nil {
		closeErr = joinCloseErr(closeErr, "close browser", b.browser.Close())
		b.browser = nil
	}

	if b.pw != nil {
		closeErr = joinCloseErr(closeErr, "stop playwright", b.pw.Stop())
		b.pw = nil
	}

	return closeErr
}

type playwrightSession struct {
	context playwright.BrowserContext
	doc     *playwrightDocument
	paths   artifactPaths
	cfg     *config.Config
	logger  *logrus.Entry
}

// Document - the session's page
func (s *playwrightSession) Document() interfaces.Document {
	return s.doc
}

// Close - captures artifacts and closes the context
func (s *playwrightSession) Close(ctx context.Context, failed bool) (entities.Artifacts, error) {
	var artifacts entities.Artifacts
	var closeErr error

	if failed && s.cfg.Screenshots {
		if err := s.doc.Screenshot(ctx, s.paths.screenshot); err != nil {
			s.logger.Warnf("Failed to capture screenshot: %v", err)
		} else {
			artifacts.Screenshot = s.paths.screenshot
		}
	}

	if s.cfg.Trace {
		if err := os.MkdirAll(filepath.Dir(s.paths.trace), 0755); err != nil {
			closeErr = joinCloseErr(closeErr, "create trace directory", err)
		} else if err := s.context.Tracing().Stop(s.paths.trace); err != nil {
			closeErr = joinCloseErr(closeErr, "stop tracing", err)
		} else {
			artifacts.Trace = s.paths.trace
		}
	}

	closeErr = joinCloseErr(closeErr, "close context", s.context.Close())

	if s.cfg.Video {
		artifacts.VideoDir = s.paths.videoDir
	}

	return artifacts, closeErr
}

type playwrightDocument struct {
	page              playwright.Page
	expect            playwright.PlaywrightAssertions
	timeout           time.Duration
	navigationTimeout time.Duration
	logger            *logrus.Logger
}

// Goto - loads url and waits for network idle
func (d *playwrightDocument) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.logger.Debugf("Navigating to: %s", url)
	err := await(ctx, func() error {
		_, err := d.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   millis(ctx, d.navigationTimeout),
		})
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return classify(err, entities.ErrNavigationTimeout, url, "page loaded and network idle", d.page.URL())
	}
	return nil
}

// WaitForURL - waits until the page URL matches pattern
func (d *playwrightDocument) WaitForURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := urlMatcher(pattern)
	if err != nil {
		return err
	}

	err = await(ctx, func() error {
		return d.page.WaitForURL(target, playwright.PageWaitForURLOptions{
			Timeout: millis(ctx, timeout),
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return classify(err, entities.ErrNavigationTimeout, "url", "url matching "+pattern.String(), d.page.URL())
	}
	return nil
}

// URL - current page URL
func (d *playwrightDocument) URL() string {
	return d.page.URL()
}

// Title - current page title
func (d *playwrightDocument) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.Title()
}

// Locate - builds a lazy element reference
func (d *playwrightDocument) Locate(selector entities.Selector) interfaces.Element {
	return &playwrightElement{doc: d, selector: selector}
}

// ExpectURL - polls the page URL against pattern
func (d *playwrightDocument) ExpectURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	re, err := pattern.Regexp()
	if err != nil {
		return err
	}

	err = d.expect.Page(d.page).ToHaveURL(re, playwright.PageAssertionsToHaveURLOptions{
		Timeout: millis(ctx, timeout),
	})
	if err != nil {
		return entities.NewCheckError(entities.ErrAssertionFailed, "url", "url matching "+pattern.String(), d.page.URL(), err)
	}
	return nil
}

// ExpectTitle - polls the page title
func (d *playwrightDocument) ExpectTitle(ctx context.Context, title string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := d.expect.Page(d.page).ToHaveTitle(title, playwright.PageAssertionsToHaveTitleOptions{
		Timeout: millis(ctx, timeout),
	})
	if err != nil {
		actual, _ := d.page.Title()
		return entities.NewCheckError(entities.ErrAssertionFailed, "title", fmt.Sprintf("%q", title), fmt.Sprintf("%q", actual), err)
	}
	return nil
}

// OnceDialog - handles the next dialog only; the listener is removed after it
// fires. After cancel the listener dismisses that dialog instead, as
// playwright does when nobody listens.
func (d *playwrightDocument) OnceDialog(handler func(interfaces.Dialog)) (cancel func()) {
	var cancelled atomic.Bool
	d.page.Once("dialog", func(dialog playwright.Dialog) {
		if cancelled.Load() {
			if err := dialog.Dismiss(); err != nil {
				d.logger.Debugf("Failed to dismiss dialog: %v", err)
			}
			return
		}
		handler(playwrightDialog{dialog: dialog})
	})
	return func() { cancelled.Store(true) }
}

type playwrightDialog struct {
	dialog playwright.Dialog
}

func (d playwrightDialog) Type() string    { return d.dialog.Type() }
func (d playwrightDialog) Message() string { return d.dialog.Message() }
func (d playwrightDialog) Accept() error   { return d.dialog.Accept() }
func (d playwrightDialog) Dismiss() error  { return d.dialog.Dismiss() }

// Screenshot - takes a screenshot of the current page
func (d *playwrightDocument) Screenshot(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	_, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

type playwrightElement struct {
	doc      *playwrightDocument
	parent   *playwrightElement
	selector entities.Selector
}

// Selector - the description this reference resolves
func (e *playwrightElement) Selector() entities.Selector {
	return e.selector
}

func (e *playwrightElement) Nth(index int) interfaces.Element {
	return &playwrightElement{doc: e.doc, parent: e.parent, selector: e.selector.Nth(index)}
}

func (e *playwrightElement) First() interfaces.Element {
	return &playwrightElement{doc: e.doc, parent: e.parent, selector: e.selector.First()}
}

func (e *playwrightElement) Last() interfaces.Element {
	return &playwrightElement{doc: e.doc, parent: e.parent, selector: e.selector.Last()}
}

func (e *playwrightElement) Within(selector entities.Selector) interfaces.Element {
	return &playwrightElement{doc: e.doc, parent: e, selector: selector}
}

func (e *playwrightElement) String() string {
	if e.parent != nil {
		return e.parent.String() + " >> " + e.selector.String()
	}
	return e.selector.String()
}

// locator - resolves the chain into a playwright locator. Playwright
// locators are lazy themselves, so this never touches the page.
func (e *playwrightElement) locator() (playwright.Locator, error) {
	if err := e.selector.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selector %s: %w", e.selector, err)
	}

	var loc playwright.Locator
	if e.parent == nil {
		loc = pageLocator(e.doc.page, e.selector)
	} else {
		base, err := e.parent.locator()
		if err != nil {
			return nil, err
		}
		loc = childLocator(base, e.selector)
	}

	if e.selector.Strategy == entities.StrategyRow {
		for _, part := range e.selector.Contains {
			loc = loc.Filter(playwright.LocatorFilterOptions{HasText: part})
		}
	}

	switch e.selector.Position {
	case entities.PositionFirst:
		loc = loc.First()
	case entities.PositionLast:
		loc = loc.Last()
	case entities.PositionNth:
		loc = loc.Nth(e.selector.Index)
	}

	return loc, nil
}

func pageLocator(page playwright.Page, s entities.Selector) playwright.Locator {
	switch s.Strategy {
	case entities.StrategyRole:
		opts := playwright.PageGetByRoleOptions{Exact: playwright.Bool(s.Exact)}
		if s.Value != "" {
			opts.Name = s.Value
		}
		return page.GetByRole(playwright.AriaRole(s.Role), opts)
	case entities.StrategyPlaceholder:
		return page.GetByPlaceholder(s.Value, playwright.PageGetByPlaceholderOptions{Exact: playwright.Bool(s.Exact)})
	case entities.StrategyText:
		return page.GetByText(s.Value, playwright.PageGetByTextOptions{Exact: playwright.Bool(s.Exact)})
	case entities.StrategyXPath:
		return page.Locator("xpath=" + s.Value)
	default:
		return page.Locator(s.Value)
	}
}

func childLocator(base playwright.Locator, s entities.Selector) playwright.Locator {
	switch s.Strategy {
	case entities.StrategyRole:
		opts := playwright.LocatorGetByRoleOptions{Exact: playwright.Bool(s.Exact)}
		if s.Value != "" {
			opts.Name = s.Value
		}
		return base.GetByRole(playwright.AriaRole(s.Role), opts)
	case entities.StrategyPlaceholder:
		return base.GetByPlaceholder(s.Value, playwright.LocatorGetByPlaceholderOptions{Exact: playwright.Bool(s.Exact)})
	case entities.StrategyText:
		return base.GetByText(s.Value, playwright.LocatorGetByTextOptions{Exact: playwright.Bool(s.Exact)})
	case entities.StrategyXPath:
		return base.Locator("xpath=" + relativeXPath(s.Value))
	default:
		return base.Locator(s.Value)
	}
}

// Click - clicks the element once it is actionable
func (e *playwrightElement) Click(ctx context.Context) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	e.doc.logger.Debugf("Clicking on: %s", e)
	if err := loc.Click(playwright.LocatorClickOptions{Timeout: millis(ctx, e.doc.timeout)}); err != nil {
		return classify(err, entities.ErrElementNotFound, e.String(), "clickable element", "")
	}
	return nil
}

// Fill - sets an input's value
func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	e.doc.logger.Debugf("Filling %s with %q", e, value)
	if err := loc.Fill(value, playwright.LocatorFillOptions{Timeout: millis(ctx, e.doc.timeout)}); err != nil {
		return classify(err, entities.ErrElementNotFound, e.String(), "editable element", "")
	}
	return nil
}

// Clear - empties an input
func (e *playwrightElement) Clear(ctx context.Context) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	if err := loc.Clear(playwright.LocatorClearOptions{Timeout: millis(ctx, e.doc.timeout)}); err != nil {
		return classify(err, entities.ErrElementNotFound, e.String(), "editable element", "")
	}
	return nil
}

// SelectByLabel - selects the option with the given visible text
func (e *playwrightElement) SelectByLabel(ctx context.Context, label string) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	_, err = loc.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}}, playwright.LocatorSelectOptionOptions{
		Timeout: millis(ctx, e.doc.timeout),
	})
	if err != nil {
		return classify(err, entities.ErrElementNotFound, e.String(), fmt.Sprintf("option labelled %q", label), "")
	}
	return nil
}

// SelectByIndex - selects the option at a zero-based index
func (e *playwrightElement) SelectByIndex(ctx context.Context, index int) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	_, err = loc.SelectOption(playwright.SelectOptionValues{Indexes: &[]int{index}}, playwright.LocatorSelectOptionOptions{
		Timeout: millis(ctx, e.doc.timeout),
	})
	if err != nil {
		return classify(err, entities.ErrElementNotFound, e.String(), fmt.Sprintf("option at index %d", index), "")
	}
	return nil
}

// WaitVisible - waits for the element to become visible
func (e *playwrightElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	err = loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: millis(ctx, timeout),
	})
	if err != nil {
		return classify(err, entities.ErrStateTimeout, e.String(), "visible", "not visible")
	}
	return nil
}

// Text - text content of the element
func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	loc, err := e.ready(ctx)
	if err != nil {
		return "", err
	}

	text, err := loc.TextContent(playwright.LocatorTextContentOptions{Timeout: millis(ctx, e.doc.timeout)})
	if err != nil {
		return "", classify(err, entities.ErrElementNotFound, e.String(), "element with text", "")
	}
	return text, nil
}

// Count - number of nodes currently matching
func (e *playwrightElement) Count(ctx context.Context) (int, error) {
	loc, err := e.ready(ctx)
	if err != nil {
		return 0, err
	}
	return loc.Count()
}

// Expect - polls until cond holds, using playwright's web-first assertions
func (e *playwrightElement) Expect(ctx context.Context, cond entities.Condition, timeout time.Duration) error {
	loc, err := e.ready(ctx)
	if err != nil {
		return err
	}

	t := millis(ctx, timeout)
	la := e.doc.expect.Locator(loc)

	switch cond.Kind {
	case entities.ConditionVisible:
		err = la.ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{Timeout: t})
	case entities.ConditionHidden:
		err = la.ToBeHidden(playwright.LocatorAssertionsToBeHiddenOptions{Timeout: t})
	case entities.ConditionEnabled:
		err = la.ToBeEnabled(playwright.LocatorAssertionsToBeEnabledOptions{Timeout: t})
	case entities.ConditionText:
		err = la.ToHaveText(cond.Text, playwright.LocatorAssertionsToHaveTextOptions{Timeout: t})
	case entities.ConditionContainsText:
		err = la.ToContainText(cond.Text, playwright.LocatorAssertionsToContainTextOptions{Timeout: t})
	case entities.ConditionCount:
		err = la.ToHaveCount(cond.Count, playwright.LocatorAssertionsToHaveCountOptions{Timeout: t})
	case entities.ConditionEmpty:
		err = la.ToBeEmpty(playwright.LocatorAssertionsToBeEmptyOptions{Timeout: t})
	case entities.ConditionNotEmpty:
		err = la.Not().ToBeEmpty(playwright.LocatorAssertionsToBeEmptyOptions{Timeout: t})
	default:
		return fmt.Errorf("unsupported condition %q", cond.Kind)
	}

	if err != nil {
		return entities.NewCheckError(entities.ErrAssertionFailed, e.String(), cond.Expected(), e.describe(loc, cond), err)
	}
	return nil
}

// describe - best-effort snapshot of the actual state for failure messages
func (e *playwrightElement) describe(loc playwright.Locator, cond entities.Condition) string {
	count, err := loc.Count()
	if err != nil {
		return "unknown"
	}

	switch cond.Kind {
	case entities.ConditionCount:
		return fmt.Sprintf("%d element(s)", count)
	case entities.ConditionText, entities.ConditionContainsText, entities.ConditionEmpty, entities.ConditionNotEmpty:
		if count == 0 {
			return "no element"
		}
		text, err := loc.First().TextContent(playwright.LocatorTextContentOptions{Timeout: playwright.Float(500)})
		if err != nil {
			return "unreadable text"
		}
		return fmt.Sprintf("text %q", strings.TrimSpace(text))
	default:
		if count == 0 {
			return "no element"
		}
		visible, _ := loc.First().IsVisible()
		if visible {
			return "visible"
		}
		return "hidden"
	}
}

func (e *playwrightElement) ready(ctx context.Context) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.locator()
}

// urlMatcher - playwright accepts globs as strings and regexps natively
func urlMatcher(pattern entities.URLPattern) (interface{}, error) {
	if pattern.Regex != "" {
		return pattern.Regexp()
	}
	if pattern.Glob == "" {
		return nil, fmt.Errorf("empty url pattern")
	}
	return pattern.Glob, nil
}

// millis - timeout option in milliseconds, capped by ctx's deadline
func millis(ctx context.Context, d time.Duration) *float64 {
	ms := budget(ctx, d).Milliseconds()
	if ms < 1 {
		// zero disables the timeout in playwright
		ms = 1
	}
	return playwright.Float(float64(ms))
}

// classify - maps playwright timeouts onto the suite's failure kinds
func classify(err error, kind error, target, expected, actual string) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return entities.NewCheckError(kind, target, expected, actual, err)
	}
	return fmt.Errorf("%s: %w", target, err)
}

// relativeXPath - scopes an absolute XPath to the current node
func relativeXPath(xpath string) string {
	if strings.HasPrefix(xpath, "/") {
		return "." + xpath
	}
	return xpath
}
