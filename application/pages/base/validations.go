package base

import (
	"context"
	"fmt"
	"time"

	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

// Validations - checks available on every page. Every check polls.
type Validations struct {
	doc      interfaces.Document
	locators *Locators
	timeout  time.Duration
}

func NewValidations(doc interfaces.Document, settings Settings) *Validations {
	return &Validations{
		doc:      doc,
		locators: NewLocators(doc),
		timeout:  settings.withDefaults().Timeout,
	}
}

// Expect - polls until el satisfies cond
func (v *Validations) Expect(ctx context.Context, el interfaces.Element, cond entities.Condition, opts ...CheckOption) error {
	return el.Expect(ctx, cond, Timeout(v.timeout, opts))
}

// ExpectAll - runs several element checks, stopping at the first failure
func (v *Validations) ExpectAll(ctx context.Context, cond entities.Condition, elements []interfaces.Element, opts ...CheckOption) error {
	for _, el := range elements {
		if err := v.Expect(ctx, el, cond, opts...); err != nil {
			return err
		}
	}
	return nil
}

// ExpectURL - polls until the URL matches pattern
func (v *Validations) ExpectURL(ctx context.Context, pattern entities.URLPattern, opts ...CheckOption) error {
	return v.doc.ExpectURL(ctx, pattern, Timeout(v.timeout, opts))
}

func (v *Validations) VerifyPageTitle(ctx context.Context, title string, opts ...CheckOption) error {
	return v.doc.ExpectTitle(ctx, title, Timeout(v.timeout, opts))
}

// VerifyURLContains - URL ends in /fragment
func (v *Validations) VerifyURLContains(ctx context.Context, fragment string, opts ...CheckOption) error {
	return v.ExpectURL(ctx, entities.Glob(fmt.Sprintf("**/%s", fragment)), opts...)
}

func (v *Validations) VerifyHomeButtonVisible(ctx context.Context, opts ...CheckOption) error {
	return v.Expect(ctx, v.locators.HomeButton(), entities.Visible(), opts...)
}

func (v *Validations) VerifyLogoutButtonVisible(ctx context.Context, opts ...CheckOption) error {
	return v.Expect(ctx, v.locators.LogoutButton(), entities.Visible(), opts...)
}
