// Package pagetest provides an in-memory Document for page object tests.
// Elements are addressed by the string form of their selector chain, so a
// test registers state through the same locators the code under test uses.
package pagetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

// State is what a fake element shows
type State struct {
	Text     string
	Hidden   bool
	Disabled bool
	// Count is the number of matched nodes; zero means one
	Count int
	// Options are the labels of a select, in DOM order
	Options []string
}

// Document is a scripted tab. It is safe for use by one scenario at a time,
// plus dialog handlers running on other goroutines.
type Document struct {
	mu       sync.Mutex
	url      string
	title    string
	elements map[string]*State
	onClick  map[string]func()
	dialogs  map[string]string
	calls    []string
	accepted []string
	pages    map[string]func()

	handler func(interfaces.Dialog)
	// handlerGen identifies the registration a cancel func belongs to
	handlerGen uint64
}

func NewDocument() *Document {
	return &Document{
		elements: make(map[string]*State),
		onClick:  make(map[string]func()),
		dialogs:  make(map[string]string),
		pages:    make(map[string]func()),
	}
}

// Key - the address of el
func Key(el interfaces.Element) string {
	return fmt.Sprint(el)
}

// Set registers or replaces the state of el
func (d *Document) Set(el interfaces.Element, state State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := state
	d.elements[Key(el)] = &s
}

// Remove makes el match nothing
func (d *Document) Remove(el interfaces.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, Key(el))
}

// OnClick runs fn after every click on el
func (d *Document) OnClick(el interfaces.Element, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClick[Key(el)] = fn
}

// OnGoto runs fn when url is loaded
func (d *Document) OnGoto(url string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[url] = fn
}

// DialogOnClick makes a click on el raise an alert with message
func (d *Document) DialogOnClick(el interfaces.Element, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dialogs[Key(el)] = message
}

// SetURL moves the tab to url
func (d *Document) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// Calls lists the gestures performed so far, like "click css=#login"
func (d *Document) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// Accepted lists the messages of accepted dialogs
func (d *Document) Accepted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.accepted...)
}

func (d *Document) record(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Document) state(key string) (State, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.elements[key]
	if !ok {
		return State{}, false
	}
	return *s, true
}

func (d *Document) update(key string, fn func(*State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.elements[key]; ok {
		fn(s)
	}
}

func (d *Document) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("goto %s", url)
	d.mu.Lock()
	d.url = url
	fn := d.pages[url]
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (d *Document) WaitForURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	return d.matchURL(ctx, pattern, entities.ErrNavigationTimeout)
}

func (d *Document) ExpectURL(ctx context.Context, pattern entities.URLPattern, timeout time.Duration) error {
	return d.matchURL(ctx, pattern, entities.ErrAssertionFailed)
}

func (d *Document) matchURL(ctx context.Context, pattern entities.URLPattern, kind error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := d.URL()
	ok, err := pattern.Match(url)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewCheckError(kind, "url", "url matching "+pattern.String(), url, nil)
	}
	return nil
}

func (d *Document) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url
}

func (d *Document) Title(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, nil
}

func (d *Document) ExpectTitle(ctx context.Context, title string, timeout time.Duration) error {
	actual, _ := d.Title(ctx)
	if actual != title {
		return entities.NewCheckError(entities.ErrAssertionFailed, "title", fmt.Sprintf("%q", title), fmt.Sprintf("%q", actual), nil)
	}
	return nil
}

func (d *Document) Locate(selector entities.Selector) interfaces.Element {
	return &Element{doc: d, selector: selector}
}

func (d *Document) OnceDialog(handler func(interfaces.Dialog)) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlerGen++
	gen := d.handlerGen
	d.handler = handler
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.handlerGen == gen {
			d.handler = nil
		}
	}
}

// DialogPending reports whether a dialog handler is still registered
func (d *Document) DialogPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handler != nil
}

// RaiseDialog shows an alert that no gesture caused
func (d *Document) RaiseDialog(message string) {
	d.raiseDialog(message)
}

func (d *Document) Screenshot(ctx context.Context, path string) error {
	d.record("screenshot %s", path)
	return nil
}

// raiseDialog - delivers message to the pending handler, dismissing it when
// nobody listens, as browsers do with unhandled alerts
func (d *Document) raiseDialog(message string) {
	d.mu.Lock()
	handler := d.handler
	d.handler = nil
	d.mu.Unlock()

	dlg := &Dialog{doc: d, message: message}
	if handler == nil {
		_ = dlg.Dismiss()
		return
	}
	handler(dlg)
}

// Dialog is a fake alert
type Dialog struct {
	doc     *Document
	message string
}

func (g *Dialog) Type() string    { return "alert" }
func (g *Dialog) Message() string { return g.message }

func (g *Dialog) Accept() error {
	g.doc.mu.Lock()
	defer g.doc.mu.Unlock()
	g.doc.accepted = append(g.doc.accepted, g.message)
	return nil
}

func (g *Dialog) Dismiss() error {
	g.doc.record("dismiss %s", g.message)
	return nil
}

// Element is a fake reference; every call looks its key up again
type Element struct {
	doc      *Document
	parent   *Element
	selector entities.Selector
}

func (e *Element) String() string {
	if e.parent != nil {
		return e.parent.String() + " >> " + e.selector.String()
	}
	return e.selector.String()
}

func (e *Element) Selector() entities.Selector { return e.selector }

func (e *Element) Nth(index int) interfaces.Element {
	return &Element{doc: e.doc, parent: e.parent, selector: e.selector.Nth(index)}
}

func (e *Element) First() interfaces.Element {
	return &Element{doc: e.doc, parent: e.parent, selector: e.selector.First()}
}

func (e *Element) Last() interfaces.Element {
	return &Element{doc: e.doc, parent: e.parent, selector: e.selector.Last()}
}

func (e *Element) Within(selector entities.Selector) interfaces.Element {
	return &Element{doc: e.doc, parent: e, selector: selector}
}

// actionable - the element exists and is visible
func (e *Element) actionable(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s, ok := e.doc.state(e.String())
	if !ok {
		return State{}, entities.NewCheckError(entities.ErrElementNotFound, e.String(), "one visible element", "no element", nil)
	}
	if s.Hidden {
		return State{}, entities.NewCheckError(entities.ErrElementNotFound, e.String(), "one visible element", "hidden", nil)
	}
	return s, nil
}

func (e *Element) Click(ctx context.Context) error {
	if _, err := e.actionable(ctx); err != nil {
		return err
	}
	key := e.String()
	e.doc.record("click %s", key)

	e.doc.mu.Lock()
	fn := e.doc.onClick[key]
	message, raises := e.doc.dialogs[key]
	e.doc.mu.Unlock()

	if raises {
		e.doc.raiseDialog(message)
	}
	if fn != nil {
		fn()
	}
	return nil
}

func (e *Element) Fill(ctx context.Context, value string) error {
	if _, err := e.actionable(ctx); err != nil {
		return err
	}
	e.doc.record("fill %s %s", e, value)
	e.doc.update(e.String(), func(s *State) { s.Text = value })
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	if _, err := e.actionable(ctx); err != nil {
		return err
	}
	e.doc.record("clear %s", e)
	e.doc.update(e.String(), func(s *State) { s.Text = "" })
	return nil
}

func (e *Element) SelectByLabel(ctx context.Context, label string) error {
	s, err := e.actionable(ctx)
	if err != nil {
		return err
	}
	for _, opt := range s.Options {
		if opt == label {
			e.doc.record("select %s %s", e, label)
			return nil
		}
	}
	return entities.NewCheckError(entities.ErrElementNotFound, e.String(), fmt.Sprintf("option labelled %q", label), strings.Join(s.Options, ", "), nil)
}

func (e *Element) SelectByIndex(ctx context.Context, index int) error {
	s, err := e.actionable(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s.Options) {
		return entities.NewCheckError(entities.ErrElementNotFound, e.String(), fmt.Sprintf("option at index %d", index), fmt.Sprintf("%d options", len(s.Options)), nil)
	}
	e.doc.record("select %s %s", e, s.Options[index])
	return nil
}

func (e *Element) WaitVisible(ctx context.Context, timeout time.Duration) error {
	if _, err := e.actionable(ctx); err != nil {
		return entities.Reclassify(err, entities.ErrStateTimeout, e.String())
	}
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	s, err := e.actionable(ctx)
	if err != nil {
		return "", err
	}
	return s.Text, nil
}

func (e *Element) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s, ok := e.doc.state(e.String())
	if !ok {
		return 0, nil
	}
	if s.Count == 0 {
		return 1, nil
	}
	return s.Count, nil
}

// Expect checks cond once; fakes never change while nobody acts
func (e *Element) Expect(ctx context.Context, cond entities.Condition, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, found := e.doc.state(e.String())

	var ok bool
	actual := "no element"
	if found {
		actual = fmt.Sprintf("text %q", s.Text)
	}

	switch cond.Kind {
	case entities.ConditionCount:
		n, _ := e.Count(ctx)
		ok, actual = n == cond.Count, fmt.Sprintf("%d element(s)", n)
	case entities.ConditionHidden:
		ok = !found || s.Hidden
	case entities.ConditionVisible:
		ok = found && !s.Hidden
	case entities.ConditionEnabled:
		ok = found && !s.Disabled
	case entities.ConditionText:
		ok = found && s.Text == cond.Text
	case entities.ConditionContainsText:
		ok = found && strings.Contains(s.Text, cond.Text)
	case entities.ConditionEmpty:
		ok = found && strings.TrimSpace(s.Text) == ""
	case entities.ConditionNotEmpty:
		ok = found && strings.TrimSpace(s.Text) != ""
	}

	if !ok {
		return entities.NewCheckError(entities.ErrAssertionFailed, e.String(), cond.Expected(), actual, nil)
	}
	return nil
}

var _ interfaces.Document = (*Document)(nil)
var _ interfaces.Element = (*Element)(nil)
