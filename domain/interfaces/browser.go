package interfaces

import (
	"bank_e2e/domain/entities"
	"context"
	"time"
)

// Browser launches isolated sessions on one automation engine
type Browser interface {
	// Name identifies the driver ("playwright", "selenium")
	Name() string

	// NewSession opens a fresh context and tab. name keys the artifacts.
	NewSession(ctx context.Context, name string) (Session, error)

	// Close shuts the engine down
	Close() error
}

// Session is one scenario's exclusive browser context
type Session interface {
	// Document returns the session's only tab
	Document() Document

	// Close releases the session and reports the artifacts it produced.
	// failed asks for a screenshot before the tab goes away.
	Close(ctx context.Context, failed bool) (entities.Artifacts, error)
}

// Document is a handle to one tab's current page
type Document interface {
	// Goto loads url and blocks until the network is idle
	Goto(ctx context.Context, url string) error

	// WaitForURL blocks until the tab's URL matches pattern
	WaitForURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error

	// URL returns the current URL
	URL() string

	// Title returns the document title
	Title(ctx context.Context) (string, error)

	// Locate builds a lazy element reference. It never queries the page.
	Locate(selector entities.Selector) Element

	// ExpectURL polls until the URL matches pattern
	ExpectURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error

	// ExpectTitle polls until the title equals title
	ExpectTitle(ctx context.Context, title string, timeout time.Duration) error

	// OnceDialog registers handler for the next native dialog only. cancel
	// deregisters it when the gesture that should raise the dialog failed.
	OnceDialog(handler func(Dialog)) (cancel func())

	// Screenshot writes a PNG of the viewport to path
	Screenshot(ctx context.Context, path string) error
}

// Dialog is a native alert, confirm or prompt raised by the page
type Dialog interface {
	Type() string
	Message() string
	Accept() error
	Dismiss() error
}

// Element is a deferred reference to zero or more nodes. Every call
// re-resolves it against the live document.
type Element interface {
	// Selector returns the description the reference was built from
	Selector() entities.Selector

	Nth(index int) Element
	First() Element
	Last() Element

	// Within scopes selector to descendants of this element
	Within(selector entities.Selector) Element

	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	Clear(ctx context.Context) error

	// SelectByLabel picks the option whose visible text equals label
	SelectByLabel(ctx context.Context, label string) error

	// SelectByIndex picks the option at a zero-based DOM index
	SelectByIndex(ctx context.Context, index int) error

	// WaitVisible blocks until the element is visible
	WaitVisible(ctx context.Context, timeout time.Duration) error

	Text(ctx context.Context) (string, error)
	Count(ctx context.Context) (int, error)

	// Expect polls until cond holds or timeout elapses
	Expect(ctx context.Context, cond entities.Condition, timeout time.Duration) error
}
