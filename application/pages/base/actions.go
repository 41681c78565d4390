package base

import (
	"context"
	"fmt"
	"strings"

	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var LoginURL = entities.Glob("**/login")

// Actions - gestures available on every page
type Actions struct {
	doc      interfaces.Document
	locators *Locators
	settings Settings
}

func NewActions(doc interfaces.Document, settings Settings) *Actions {
	return &Actions{
		doc:      doc,
		locators: NewLocators(doc),
		settings: settings.withDefaults(),
	}
}

// Document - the tab these actions drive
func (a *Actions) Document() interfaces.Document {
	return a.doc
}

// Settings - the resolved settings
func (a *Actions) Settings() Settings {
	return a.settings
}

// Logger - step logger
func (a *Actions) Logger() *logrus.Entry {
	return a.settings.Logger
}

// NavigateTo - loads path relative to the base URL and waits for network idle
func (a *Actions) NavigateTo(ctx context.Context, path string) error {
	url := a.settings.BaseURL + strings.TrimPrefix(path, "/")
	a.settings.Logger.Debugf("Navigating to: %s", url)
	if err := a.doc.Goto(ctx, url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	return nil
}

// WaitForURL - blocks until the URL matches pattern
func (a *Actions) WaitForURL(ctx context.Context, pattern entities.URLPattern) error {
	return a.doc.WaitForURL(ctx, pattern, a.settings.NavigationTimeout)
}

// ClickAndWait - clicks el and returns only once the URL matches pattern
func (a *Actions) ClickAndWait(ctx context.Context, el interfaces.Element, pattern entities.URLPattern) error {
	if err := a.Click(ctx, el); err != nil {
		return err
	}
	if err := a.WaitForURL(ctx, pattern); err != nil {
		return fmt.Errorf("failed to reach %s: %w", pattern, err)
	}
	return nil
}

// Click - clicks el with step logging
func (a *Actions) Click(ctx context.Context, el interfaces.Element) error {
	a.settings.Logger.Debugf("Clicking on: %s", el.Selector())
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", el.Selector(), err)
	}
	return nil
}

// Fill - sets a field's value with step logging
func (a *Actions) Fill(ctx context.Context, el interfaces.Element, value string) error {
	a.settings.Logger.Debugf("Filling %s with %q", el.Selector(), value)
	if err := el.Fill(ctx, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", el.Selector(), err)
	}
	return nil
}

func (a *Actions) ClickHome(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.HomeButton(), LoginURL)
}

func (a *Actions) ClickLogout(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.LogoutButton(), LoginURL)
}
